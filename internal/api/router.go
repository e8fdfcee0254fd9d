package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
)

// NewRouter wires every route. An empty allowedOrigins list allows any
// origin.
func NewRouter(h *Handler, auth *AuthHandler, allowedOrigins []string) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(corsConfig(allowedOrigins)))

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, Version)

		pokemon := apiRoutes.Group(constants.RoutePokemon)
		pokemon.GET(constants.RoutePlayable, h.ListPlayable)
		pokemon.GET(constants.RoutePlayableByName, h.GetPlayable)
		pokemon.GET(constants.RouteTypes, h.ListTypes)
		pokemon.GET(constants.RouteFilterByType, h.FilterByType)
		pokemon.GET(constants.RouteSortByStat, h.SortByStat)
		pokemon.GET(constants.RouteCatalogStatistics, h.CatalogStatistics)
		pokemon.GET(constants.RouteExists, h.SpeciesExists)

		apiRoutes.POST(constants.RouteUsers, h.CreateUser)
		apiRoutes.GET(constants.RouteUsers, h.ListUsers)
		apiRoutes.GET(constants.RouteUserByID, h.GetUser)
		apiRoutes.PUT(constants.RouteUserByID, h.UpdateUser)
		apiRoutes.DELETE(constants.RouteUserByID, h.DeleteUser)
		apiRoutes.POST(constants.RouteUserPokemon, h.AddUserPokemon)
		apiRoutes.GET(constants.RouteUserPokemon, h.ListUserPokemon)
		apiRoutes.DELETE(constants.RouteUserPokemonByIdx, h.RemoveUserPokemon)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)

		apiRoutes.POST(constants.RouteAuthLogin, auth.Login)
		apiRoutes.POST(constants.RouteAuthGoogleCallBack, auth.GoogleOAuthCallback)
		apiRoutes.GET(constants.RouteAuthValidate, AuthRequired(), auth.Validate)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(AuthRequired())
		protected.POST(constants.RouteBattles, h.CreateBattle)
		protected.GET(constants.RouteBattleByID, h.GetBattle)
		protected.GET(constants.RouteBattleLog, h.GetBattleLog)
		protected.POST(constants.RouteBattleAttack, h.Attack)
		protected.POST(constants.RouteBattleSwitch, h.Switch)

		// Browsers cannot set headers on a websocket upgrade.
		apiRoutes.GET(constants.RouteBattleStream, AuthRequiredOrQuery(), h.StreamBattle)
	}
	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	cfg.AddAllowHeaders(constants.HeaderAuthorization)
	return cfg
}
