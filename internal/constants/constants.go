package constants

// Centralized constants for headers, env keys and auth.
const (
	// Environment variable keys
	EnvConfigPath         = "POKEBATTLE_CONFIG"
	EnvDatabaseDSN        = "POKEBATTLE_DB"
	EnvTokenSecret        = "POKEBATTLE_TOKEN_SECRET"
	EnvGoogleClientID     = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvHealthcheckURL     = "POKEBATTLE_HEALTH_URL"

	DefaultConfigPath = "./pokebattle_config.json"
	DefaultDatabase   = "./data/pokebattle.db"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "
	// Query parameter carrying the token for browser websocket clients,
	// which cannot set headers on the upgrade request.
	QueryAccessToken = "access_token"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Gin context keys set by the auth middleware
const (
	CtxUserID   = "userID"
	CtxUserName = "userName"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"
	RouteVersion   = "/version"

	RoutePokemon           = "/pokemon"
	RoutePlayable          = "/playable"
	RoutePlayableByName    = "/playable/:name"
	RouteTypes             = "/types"
	RouteFilterByType      = "/filter/type/:type"
	RouteSortByStat        = "/stats/:stat"
	RouteCatalogStatistics = "/statistics"
	RouteExists            = "/exists/:name"

	RouteUsers              = "/user"
	RouteUserByID           = "/user/:id"
	RouteUserPokemon        = "/user/:id/pokemon"
	RouteUserPokemonByIdx   = "/user/:id/pokemon/:index"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthLogin          = "/auth/login"
	RouteAuthValidate       = "/auth/validate"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"

	RouteBattles      = "/battles"
	RouteBattleByID   = "/battles/:id"
	RouteBattleLog    = "/battles/:id/log"
	RouteBattleAttack = "/battles/:id/attack"
	RouteBattleSwitch = "/battles/:id/switch"
	RouteBattleStream = "/battles/:id/ws"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"

	ErrInvalidUserID          = "Invalid user ID format"
	ErrUserNotFound           = "User not found"
	ErrFailedCreateUser       = "Failed to create user"
	ErrFailedFetchUsers       = "Failed to fetch users"
	ErrFailedUpdateUser       = "Failed to update user"
	ErrFailedDeleteUser       = "Failed to delete user"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch statistics"

	ErrPokemonNotFound   = "Pokemon not found"
	ErrInvalidType       = "Invalid type"
	ErrInvalidStat       = "Invalid stat; use hp, attack, defense or speed"
	ErrRosterFull        = "Team already has six Pokemon"
	ErrInvalidRosterSlot = "Invalid Pokemon index"
	ErrFailedSaveRoster  = "Failed to update team"

	ErrBattleNotFound    = "Battle not found"
	ErrNotParticipant    = "Only participants may act in this battle"
	ErrNotYourSide       = "Cannot act for the opposing trainer"
	ErrSameTrainer       = "A trainer cannot battle themselves"
	ErrFailedStartBattle = "Failed to start battle"
	ErrFailedFetchBattle = "Failed to fetch battle"
	ErrFailedBattleMove  = "Failed to apply battle action"
	ErrMissingMoveKind   = "kind must be normal or special"
	ErrMissingSwitchSlot = "index is required"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired = "Authentication required"
	ErrInvalidToken = "Invalid or expired token"
)

// Logging field names
const (
	LogFieldBattleID  = "battle_id"
	LogFieldUserID    = "user_id"
	LogFieldSide      = "side"
	LogFieldSlot      = "slot"
	LogFieldStatus    = "status"
	LogFieldTurn      = "turn"
	LogFieldSource    = "source"
	LogFieldName      = "name"
	LogFieldKey       = "key"
	LogFieldAddr      = "addr"
	LogFieldComponent = "component"
	LogFieldDriver    = "driver"
	LogFieldCount     = "count"
)
