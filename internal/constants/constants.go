package constants

// Centralized constants for env keys, routes and API messages.
const (
	// Environment variable keys
	EnvConfigPath          = "POCKET_ARENA_CONFIG"
	EnvDatabasePath        = "POCKET_ARENA_DB"
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"

	DefaultConfigPath = "./config.yaml"

	// Session / Cookie names
	CookieSessionName = "pa_session"

	// Context keys set by the auth middleware
	CtxUserEmail = "userEmail"
	CtxUserName  = "userName"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteHealthz            = "/healthz"
	RouteVersion            = "/version"
	RouteSpecies            = "/species"
	RouteMoves              = "/moves"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RoutePlayerStats        = "/player-stats"
	RouteHistory            = "/history"
	RouteBattles            = "/battles"
	RouteBattleByID         = "/battles/:battleID"
	RouteBattleAction       = "/battles/:battleID/action"
	RouteBattleChoice       = "/battles/:battleID/choice"
	RouteBattleForfeit      = "/battles/:battleID/forfeit"
	RouteBattleEvents       = "/battles/:battleID/events"
	RouteBattleStream       = "/battles/:battleID/stream"

	ParamBattleID = "battleID"
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
	ErrInvalidRequest         = "Invalid request"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedFetchHistory     = "Failed to fetch battle history"
	ErrFailedEncodeResponse   = "Failed to encode response"

	ErrBattleNotFound     = "Battle not found"
	ErrNotParticipant     = "Not a participant of this battle"
	ErrBattleOver         = "Battle is over"
	ErrNoPendingChoice    = "Battle is not waiting for a choice"
	ErrInvalidAction      = "Invalid action"
	ErrInvalidChoice      = "Invalid choice"
	ErrInvalidParty       = "Invalid party"
	ErrInvalidLevel       = "Invalid level"
	ErrInvalidMoveSet     = "Invalid move set"
	ErrUnknownSpecies     = "Unknown species"
	ErrUnknownMove        = "Unknown move"
	ErrFailedStartBattle  = "Failed to start battle"
	ErrFailedUpdateBattle = "Failed to update battle"
	ErrInvalidSince       = "since must be a non-negative integer"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldEmail    = "email"
	LogFieldAddr     = "addr"
	LogFieldPath     = "path"
	LogFieldCount    = "count"
)
