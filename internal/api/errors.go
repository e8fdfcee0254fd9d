package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/engine"
	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
	"github.com/tyoppar01/pokemon-battle-v3/internal/logging"
	"github.com/tyoppar01/pokemon-battle-v3/internal/service"
)

// statusFor maps a service, game or engine error to an HTTP status and the
// message shown to the client. Unknown errors map to 500 with no message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidTrainerID):
		return http.StatusBadRequest, constants.ErrInvalidUserID
	case errors.Is(err, service.ErrTrainerNotFound):
		return http.StatusNotFound, constants.ErrUserNotFound
	case errors.Is(err, service.ErrInvalidName), errors.Is(err, service.ErrInvalidGender):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrRosterFull):
		return http.StatusBadRequest, constants.ErrRosterFull
	case errors.Is(err, service.ErrInvalidRosterSlot):
		return http.StatusBadRequest, constants.ErrInvalidRosterSlot
	case errors.Is(err, service.ErrSpeciesNotFound):
		return http.StatusNotFound, constants.ErrPokemonNotFound
	case errors.Is(err, service.ErrInvalidStat):
		return http.StatusBadRequest, constants.ErrInvalidStat
	case errors.Is(err, game.ErrUnknownType):
		return http.StatusBadRequest, constants.ErrInvalidType
	case errors.Is(err, game.ErrUnknownSpecies), errors.Is(err, game.ErrInvalidLevel):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, service.ErrBattleNotFound):
		return http.StatusNotFound, constants.ErrBattleNotFound
	case errors.Is(err, service.ErrNotParticipant):
		return http.StatusForbidden, constants.ErrNotParticipant
	case errors.Is(err, service.ErrNotYourSide):
		return http.StatusForbidden, constants.ErrNotYourSide
	case errors.Is(err, service.ErrSameTrainer):
		return http.StatusBadRequest, constants.ErrSameTrainer
	case errors.Is(err, engine.ErrEmptyTeam), errors.Is(err, engine.ErrInvalidTarget):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, engine.ErrIllegalState):
		return http.StatusConflict, err.Error()
	}
	return http.StatusInternalServerError, ""
}

// respondError writes err as a JSON error body. Errors with no known
// mapping are logged and reported with the fallback message.
func respondError(c *gin.Context, err error, fallback string) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		logging.Error(fallback, err, logging.Fields{"path": c.FullPath()})
		msg = fallback
	}
	c.JSON(code, gin.H{constants.JSONKeyError: msg})
}
