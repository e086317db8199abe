package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"gatherpass/auth"
	"gatherpass/config"
	"gatherpass/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OauthController struct {
	oauthService *service.OauthService
	userService  *service.UserService
}

func NewOauthController(db *gorm.DB) *OauthController {
	return &OauthController{
		oauthService: service.NewOauthService(db),
		userService:  service.NewUserService(db),
	}
}

func setupOauthController(db *gorm.DB) []RouteInfo {
	e := NewOauthController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/oauth2/discord", HandlerFunc: e.discordOauthHandler()},
		{Method: "GET", Path: "/oauth2/discord/redirect", HandlerFunc: e.discordRedirectHandler()},
		{Method: "POST", Path: "/token", HandlerFunc: e.createTokenHandler(), AdminOnly: true},
	}
	return routes
}

// @Description Redirects to discord oauth
// @Tags oauth
// @Produce json
// @Success 302
// @Router /oauth2/discord [get]
func (e *OauthController) discordOauthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		lastUrl := c.Request.URL.Query().Get("last_url")
		redirectUrl := fmt.Sprintf("https://%s/api/oauth2/discord/redirect", config.Env().PublicDomain)
		c.Redirect(http.StatusTemporaryRedirect, e.oauthService.GetRedirectUrl(lastUrl, redirectUrl))
	}
}

// @Description Redirect handler for discord oauth
// @Tags oauth
// @Produce json
// @Success 302
// @Router /oauth2/discord/redirect [get]
func (e *OauthController) discordRedirectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Request.URL.Query().Get("code")
		state := c.Request.URL.Query().Get("state")
		user, lastUrl, err := e.oauthService.VerifyDiscord(state, code)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		authToken, err := auth.CreateToken(user)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie("auth", authToken, 60*60*24*7, "/", config.Env().PublicDomain, false, true)
		if lastUrl == "" {
			lastUrl = "/"
		}
		c.Redirect(http.StatusTemporaryRedirect, lastUrl)
	}
}

// @id CreateToken
// @Description Mints a token for a user, identified by discord snowflake
// @Tags oauth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Token request"
// @Success 200 {object} TokenResponse
// @Security ApiKeyAuth
// @Router /token [post]
func (e *OauthController) createTokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request TokenRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		discordId, err := strconv.ParseInt(request.DiscordId, 10, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "discord_id must be a snowflake"})
			return
		}
		user, err := e.userService.GetUserByDiscordId(discordId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "User not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		token, err := auth.CreateToken(user)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}

type TokenRequest struct {
	DiscordId string `json:"discord_id" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token" binding:"required"`
	TokenType   string `json:"token_type" binding:"required"`
}
