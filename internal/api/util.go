package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/service"
	"github.com/gin-gonic/gin"
)

// identity reads the trainer injected by AuthRequired.
func identity(c *gin.Context) service.Identity {
	email, _ := c.Get(constants.CtxUserEmail)
	name, _ := c.Get(constants.CtxUserName)
	e, _ := email.(string)
	n, _ := name.(string)
	return service.Identity{Email: e, Name: n}
}

// queryLimit parses ?limit=N, falling back to def when absent or out of
// 1..upper.
func queryLimit(c *gin.Context, def, upper int) int {
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= upper {
			return n
		}
	}
	return def
}

// errorStatus maps service and engine errors to an HTTP status and a
// client-facing message. Unknown errors are 500.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		return http.StatusNotFound, constants.ErrBattleNotFound
	case errors.Is(err, service.ErrNotParticipant):
		return http.StatusForbidden, constants.ErrNotParticipant
	case errors.Is(err, engine.ErrBattleOver):
		return http.StatusConflict, constants.ErrBattleOver
	case errors.Is(err, engine.ErrNoPendingChoice):
		return http.StatusConflict, constants.ErrNoPendingChoice
	case errors.Is(err, engine.ErrInvalidAction):
		return http.StatusBadRequest, constants.ErrInvalidAction
	case errors.Is(err, engine.ErrInvalidChoice):
		return http.StatusBadRequest, constants.ErrInvalidChoice
	case errors.Is(err, engine.ErrInvalidPartyState):
		return http.StatusBadRequest, constants.ErrInvalidParty
	case errors.Is(err, service.ErrInvalidLevel):
		return http.StatusBadRequest, constants.ErrInvalidLevel
	case errors.Is(err, service.ErrInvalidMoveSet):
		return http.StatusBadRequest, constants.ErrInvalidMoveSet
	case errors.Is(err, service.ErrUnknownSpecies):
		return http.StatusBadRequest, constants.ErrUnknownSpecies
	case errors.Is(err, service.ErrUnknownMove):
		return http.StatusBadRequest, constants.ErrUnknownMove
	}
	return http.StatusInternalServerError, constants.ErrFailedUpdateBattle
}

// abortWithError writes the mapped status. Client errors carry the wrapped
// reason in details.
func abortWithError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	body := gin.H{constants.JSONKeyError: msg}
	if status < http.StatusInternalServerError {
		body[constants.JSONKeyDetails] = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}
