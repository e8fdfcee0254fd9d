package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/logging"
	"github.com/tyoppar01/pokemon-battle-v3/internal/service"
)

// writeSnake responds with v after normalizing gorm keys to snake_case.
func writeSnake(c *gin.Context, code int, v interface{}, fallback string) {
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
		return
	}
	c.JSON(code, out)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req service.TrainerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	t, err := service.CreateTrainer(h.repo, req)
	if err != nil {
		respondError(c, err, constants.ErrFailedCreateUser)
		return
	}
	logging.Info("trainer created", logging.Fields{constants.LogFieldUserID: t.ID, constants.LogFieldName: t.Name})
	writeSnake(c, http.StatusCreated, t, constants.ErrFailedCreateUser)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := service.ListTrainers(h.repo)
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchUsers)
		return
	}
	writeSnake(c, http.StatusOK, users, constants.ErrFailedFetchUsers)
}

func (h *Handler) GetUser(c *gin.Context) {
	t, err := service.GetTrainer(h.repo, c.Param("id"))
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchUsers)
		return
	}
	writeSnake(c, http.StatusOK, t, constants.ErrFailedFetchUsers)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req service.TrainerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	t, err := service.UpdateTrainer(h.repo, c.Param("id"), req)
	if err != nil {
		respondError(c, err, constants.ErrFailedUpdateUser)
		return
	}
	writeSnake(c, http.StatusOK, t, constants.ErrFailedUpdateUser)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := service.DeleteTrainer(h.repo, id); err != nil {
		respondError(c, err, constants.ErrFailedDeleteUser)
		return
	}
	logging.Info("trainer deleted", logging.Fields{constants.LogFieldUserID: id})
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "User deleted"})
}

// AddUserPokemon appends a creature to the end of a trainer's team.
func (h *Handler) AddUserPokemon(c *gin.Context) {
	var req service.AddPokemonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	oc, err := service.AddPokemon(h.repo, h.pokedex, c.Param("id"), req)
	if err != nil {
		respondError(c, err, constants.ErrFailedSaveRoster)
		return
	}
	writeSnake(c, http.StatusCreated, oc, constants.ErrFailedSaveRoster)
}

func (h *Handler) ListUserPokemon(c *gin.Context) {
	out, err := service.ListPokemon(h.repo, c.Param("id"))
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchUsers)
		return
	}
	writeSnake(c, http.StatusOK, out, constants.ErrFailedFetchUsers)
}

// RemoveUserPokemon removes the creature at :index; later creatures move up
// one slot.
func (h *Handler) RemoveUserPokemon(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRosterSlot})
		return
	}
	if err := service.RemovePokemon(h.repo, c.Param("id"), idx); err != nil {
		respondError(c, err, constants.ErrFailedSaveRoster)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Pokemon removed"})
}

// ListLeaderboard returns the top trainers by wins (desc), limited to top 10 by default.
func (h *Handler) ListLeaderboard(c *gin.Context) {
	users, err := h.repo.GetTopTrainers(parseLimit(c.Query("limit")))
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchLeaderboard)
		return
	}
	writeSnake(c, http.StatusOK, users, constants.ErrFailedFetchLeaderboard)
}
