package controllers

import (
	"errors"
	"net/http"

	"tokengate/models"
	"tokengate/spotify"
	"tokengate/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	oauth *spotify.Client
}

func NewAuthController(oauth *spotify.Client) *AuthController {
	return &AuthController{oauth: oauth}
}

// Login issues the authorization redirect. Each call gets a fresh state value;
// the state is never stored or checked on callback.
func (c *AuthController) Login(ctx *gin.Context) {
	state, err := utils.GenerateStateToken()
	if err != nil {
		utils.LogSecurityEvent("state_generation_failed", ctx.ClientIP(), ctx.GetHeader("User-Agent"), "oauth", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "state_generation_failed",
			"message": "Failed to generate state token",
		})
		return
	}

	authURL, err := c.oauth.GetAuthURL(state)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "server_misconfigured",
			"message": err.Error(),
		})
		return
	}

	utils.LogOAuthEvent(models.AuditActionLogin, ctx.ClientIP(), ctx.GetHeader("User-Agent"), true, map[string]interface{}{
		"action": "initiate_oauth",
	})

	ctx.Redirect(http.StatusFound, authURL)
}

// Callback accepts the provider redirect and exchanges the authorization code
// for tokens. The provider's JSON body is relayed to the caller.
func (c *AuthController) Callback(ctx *gin.Context) {
	code := ctx.Query("code")
	state := ctx.Query("state")
	errorParam := ctx.Query("error")

	if errorParam != "" {
		utils.LogOAuthEvent(models.AuditActionCallback, ctx.ClientIP(), ctx.GetHeader("User-Agent"), false, map[string]interface{}{
			"error": errorParam,
		})
		resp := gin.H{
			"success": false,
			"error":   errorParam,
			"message": "Authorization denied by provider",
		}
		if state != "" {
			resp["state"] = state
		}
		ctx.JSON(http.StatusBadRequest, resp)
		return
	}

	if code == "" {
		utils.LogSecurityEvent("missing_code", ctx.ClientIP(), ctx.GetHeader("User-Agent"), "oauth", "No authorization code received")
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "missing_code",
			"message": "No authorization code received",
		})
		return
	}

	token, err := c.oauth.ExchangeCode(code)
	if err != nil {
		c.handleExchangeError(ctx, models.AuditActionCallback, "exchange_failed", err)
		return
	}

	utils.LogOAuthEvent(models.AuditActionCallback, ctx.ClientIP(), ctx.GetHeader("User-Agent"), true, map[string]interface{}{
		"scope": token.Scope,
	})

	ctx.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  token.AccessToken,
		"token_type":    token.TokenType,
		"scope":         token.Scope,
		"expires_in":    token.ExpiresIn,
		"refresh_token": token.RefreshToken,
	})
}

// RefreshToken exchanges a refresh token for a new access token.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	refreshToken := ctx.Query("refresh_token")
	if refreshToken == "" {
		utils.LogSecurityEvent("missing_refresh_token", ctx.ClientIP(), ctx.GetHeader("User-Agent"), "oauth", "No refresh token received")
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "missing_refresh_token",
			"message": "refresh_token query parameter is required",
		})
		return
	}

	token, err := c.oauth.RefreshAccessToken(refreshToken)
	if err != nil {
		c.handleExchangeError(ctx, models.AuditActionTokenRefresh, "refresh_failed", err)
		return
	}

	utils.LogOAuthEvent(models.AuditActionTokenRefresh, ctx.ClientIP(), ctx.GetHeader("User-Agent"), true, map[string]interface{}{
		"scope": token.Scope,
	})

	resp := gin.H{
		"success":      true,
		"access_token": token.AccessToken,
		"token_type":   token.TokenType,
		"scope":        token.Scope,
		"expires_in":   token.ExpiresIn,
	}
	if token.RefreshToken != "" {
		resp["refresh_token"] = token.RefreshToken
	}
	ctx.JSON(http.StatusOK, resp)
}

// handleExchangeError maps a provider-reported token error to 400 with the
// provider's code and description untouched, and anything else (network error,
// malformed body) to 500 with a generic code.
func (c *AuthController) handleExchangeError(ctx *gin.Context, action models.AuditEventAction, genericCode string, err error) {
	var tokenErr *spotify.TokenError
	if errors.As(err, &tokenErr) {
		utils.LogOAuthEvent(action, ctx.ClientIP(), ctx.GetHeader("User-Agent"), false, map[string]interface{}{
			"error": tokenErr.Code,
		})
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   tokenErr.Code,
			"message": tokenErr.Description,
		})
		return
	}

	utils.LogOAuthEvent(action, ctx.ClientIP(), ctx.GetHeader("User-Agent"), false, map[string]interface{}{
		"error": genericCode,
	})
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   genericCode,
		"message": err.Error(),
	})
}
