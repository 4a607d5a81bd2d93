package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/storage"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthHandler struct {
	repo       storage.Repository
	sessionTTL time.Duration
}

func NewAuthHandler(repo storage.Repository, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{repo: repo, sessionTTL: sessionTTL}
}

type GoogleOAuthCallbackRequest struct {
	Code string `json:"code"`
}

// GoogleOAuthCallback exchanges the authorization code, registers the
// trainer and sets the session cookie.
func (h *AuthHandler) GoogleOAuthCallback(c *gin.Context) {
	var req GoogleOAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	clientID := os.Getenv(constants.EnvGoogleClientID)
	clientSecret := os.Getenv(constants.EnvGoogleClientSecret)
	if clientID == "" || clientSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingGoogleEnv})
		return
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
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
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	_ = json.Unmarshal(userData, &profile)
	if profile.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrNoEmailInGoogleProfile})
		return
	}

	if err := h.repo.UpsertTrainer(profile.Email, profile.Name); err != nil {
		logging.Error("failed to register trainer", err, logging.Fields{constants.LogFieldEmail: profile.Email})
	}

	sess, err := createSessionToken(profile.Email, profile.Name, h.sessionTTL, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession, constants.JSONKeyDetails: err.Error()})
		return
	}
	setSessionCookie(c, sess, h.sessionTTL)

	out := gin.H{"email": profile.Email, "name": profile.Name}
	if profile.Picture != "" {
		out["picture"] = profile.Picture
	}
	c.JSON(http.StatusOK, out)
}
