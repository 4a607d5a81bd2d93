package api

import (
	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route onto a gin engine with the default
// logger and recovery middleware.
func NewRouter(h *BattleHandler, auth *AuthHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET(constants.RouteHealthz, Healthz)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteSpecies, h.ListSpecies)
		apiRoutes.GET(constants.RouteMoves, h.ListMoves)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.POST(constants.RouteAuthGoogleCallBack, auth.GoogleOAuthCallback)

		protected := apiRoutes.Group("")
		protected.Use(AuthRequired())

		protected.GET(constants.RoutePlayerStats, h.GetPlayerStats)
		protected.GET(constants.RouteHistory, h.ListHistory)
		protected.POST(constants.RouteBattles, h.CreateBattle)
		protected.GET(constants.RouteBattleByID, h.GetBattle)
		protected.POST(constants.RouteBattleAction, h.SubmitAction)
		protected.POST(constants.RouteBattleChoice, h.ProvideChoice)
		protected.POST(constants.RouteBattleForfeit, h.Forfeit)
		protected.GET(constants.RouteBattleEvents, h.ListEvents)
		protected.GET(constants.RouteBattleStream, h.StreamEvents)
	}
	return router
}
