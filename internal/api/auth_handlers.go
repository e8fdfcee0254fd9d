package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/dedupe"
	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
	"github.com/tyoppar01/pokemon-battle-v3/internal/logging"
	"github.com/tyoppar01/pokemon-battle-v3/internal/service"
	"github.com/tyoppar01/pokemon-battle-v3/internal/storage"
)

type AuthHandler struct {
	repo storage.Repository
	ttl  time.Duration
}

func NewAuthHandler(repo storage.Repository, ttl time.Duration) *AuthHandler {
	return &AuthHandler{repo: repo, ttl: ttl}
}

type LoginRequest struct {
	UserID string `json:"user_id"`
}

// Login issues a bearer token for an existing trainer.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	t, err := service.GetTrainer(h.repo, req.UserID)
	if err != nil {
		respondError(c, err, constants.ErrFailedCreateSession)
		return
	}
	h.issue(c, t)
}

// Validate reports the identity carried by a valid token. It runs behind
// AuthRequired, so reaching it means the token is good.
func (h *AuthHandler) Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"user_id":  c.GetString(constants.CtxUserID),
		"username": c.GetString(constants.CtxUserName),
	})
}

func (h *AuthHandler) issue(c *gin.Context, t *game.Trainer) {
	token, exp, err := createSessionToken(t.ID, t.Name, h.ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession, constants.JSONKeyDetails: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"user_id":    t.ID,
		"username":   t.Name,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}

type GoogleOAuthCallbackRequest struct {
	Code string `json:"code"`
}

// GoogleOAuthCallback exchanges a Google authorization code and signs the
// account into the trainer linked to its e-mail, creating one on first use.
func (h *AuthHandler) GoogleOAuthCallback(c *gin.Context) {
	var req GoogleOAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	googleClientID := os.Getenv(constants.EnvGoogleClientID)
	googleClientSecret := os.Getenv(constants.EnvGoogleClientSecret)
	if googleClientID == "" || googleClientSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingGoogleEnv})
		return
	}

	conf := &oauth2.Config{
		ClientID:     googleClientID,
		ClientSecret: googleClientSecret,
		RedirectURL:  constants.GoogleOAuthRedirect,
		Scopes:       constants.GoogleUserInfoScopes,
		Endpoint:     google.Endpoint,
	}

	ctx := c.Request.Context()
	token, err := conf.Exchange(ctx, req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrFailedExchangeToken, constants.JSONKeyDetails: err.Error()})
		return
	}

	resp, err := conf.Client(ctx, token).Get(constants.GoogleUserInfoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGetUserInfo, constants.JSONKeyDetails: err.Error()})
		return
	}
	defer resp.Body.Close()

	userData, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fmt.Sprintf(constants.ErrFailedReadUserData, err.Error())})
		return
	}

	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	_ = json.Unmarshal(userData, &profile)
	if profile.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrNoEmailInGoogleProfile})
		return
	}

	v, err, _ := dedupe.LoginGroup.Do(dedupe.KeyLoginPrefix+profile.Email, func() (interface{}, error) {
		return h.repo.UpsertGoogleTrainer(profile.Email, service.SanitizeTrainerName(profile.Name))
	})
	if err != nil {
		logging.Error("google sign-in failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	t, ok := v.(*game.Trainer)
	if !ok {
		logging.Error("google sign-in failed", errors.New("unexpected upsert result"), nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	logging.Info("google sign-in", logging.Fields{constants.LogFieldUserID: t.ID})
	h.issue(c, t)
}
