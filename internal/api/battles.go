package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/engine"
	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
)

type CreateBattlePayload struct {
	LeftUserID  string `json:"left_user_id"`
	RightUserID string `json:"right_user_id"`
}

// CreateBattle starts a battle between two stored trainers. The
// authenticated trainer must be one of them.
func (h *Handler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	v, err := h.arena.Create(currentUserID(c), req.LeftUserID, req.RightUserID)
	if err != nil {
		respondError(c, err, constants.ErrFailedStartBattle)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *Handler) GetBattle(c *gin.Context) {
	v, err := h.arena.Get(c.Param("id"))
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchBattle)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) GetBattleLog(c *gin.Context) {
	id := c.Param("id")
	lines, err := h.arena.Log(id)
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchBattle)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "log": lines})
}

type AttackPayload struct {
	Kind *game.MoveKind `json:"kind"`
}

func (h *Handler) Attack(c *gin.Context) {
	var req AttackPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.Kind == nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingMoveKind})
		return
	}
	v, err := h.arena.Attack(currentUserID(c), c.Param("id"), *req.Kind)
	if err != nil {
		respondError(c, err, constants.ErrFailedBattleMove)
		return
	}
	c.JSON(http.StatusOK, v)
}

// SwitchPayload names the team slot to bring in. Side is optional and, when
// present, must be the caller's own side.
type SwitchPayload struct {
	Side  *engine.Side `json:"side"`
	Index *int         `json:"index"`
}

func (h *Handler) Switch(c *gin.Context) {
	var req SwitchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.Index == nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingSwitchSlot})
		return
	}
	v, err := h.arena.Switch(currentUserID(c), c.Param("id"), req.Side, *req.Index)
	if err != nil {
		respondError(c, err, constants.ErrFailedBattleMove)
		return
	}
	c.JSON(http.StatusOK, v)
}
