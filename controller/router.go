package controller

import (
	"gatherpass/auth"
	"gatherpass/repository"
	"gatherpass/service"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	AdminOnly     bool
}

func SetRoutes(r *gin.Engine, db *gorm.DB, cacheStore *persistence.InMemoryStore) {
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupUserController(db)...)
	routes = append(routes, setupOauthController(db)...)
	routes = append(routes, setupSeasonController(db, cacheStore)...)
	routes = append(routes, setupItemController(db)...)
	routes = append(routes, setupRankController(db)...)
	routes = append(routes, setupPrizeController(db)...)
	routes = append(routes, setupSeasonItemController(db, cacheStore)...)
	routes = append(routes, setupSeasonRankController(db, cacheStore)...)
	routes = append(routes, setupSeasonPrizeController(db)...)
	routes = append(routes, setupSeasonUserController(db)...)
	routes = append(routes, setupSubmissionController(db)...)
	routes = append(routes, setupPromotionController(db)...)
	routes = append(routes, setupUserPrizeAwardController(db)...)
	routes = append(routes, setupLeaderboardController(db)...)

	middleware := AuthMiddleware(db)
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated || route.AdminOnly {
			handlerfuncs = append(handlerfuncs, middleware(route.AdminOnly))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		r.Handle(route.Method, "/api"+route.Path, handlerfuncs...)
	}
}

// AuthMiddleware resolves the caller to an actor: the bot via its api key,
// users via bearer token or auth cookie. Bot requests clear every permission
// check since the bot enforces discord-side roles itself.
func AuthMiddleware(db *gorm.DB) func(adminOnly bool) gin.HandlerFunc {
	userService := service.NewUserService(db)
	return func(adminOnly bool) gin.HandlerFunc {
		return func(c *gin.Context) {
			actor, user, err := userService.GetActorFromRequest(c)
			if err != nil {
				c.JSON(401, gin.H{"error": "Unauthenticated"})
				c.Abort()
				return
			}
			if adminOnly && !actor.IsBot && (user == nil || !user.Admin) {
				c.JSON(403, gin.H{"error": "Unauthorized"})
				c.Abort()
				return
			}
			c.Set("actor", actor)
			if user != nil {
				c.Set("user", user)
			}
			c.Next()
		}
	}
}

func getActor(c *gin.Context) auth.Actor {
	if actor, ok := c.Get("actor"); ok {
		return actor.(auth.Actor)
	}
	return auth.Actor{}
}

func getUser(c *gin.Context) *repository.User {
	if user, ok := c.Get("user"); ok {
		return user.(*repository.User)
	}
	return nil
}

// canActFor reports whether the caller may mutate data belonging to userId.
// The bot and admins may act for anyone, users only for themselves.
func canActFor(c *gin.Context, userId int) bool {
	actor := getActor(c)
	if actor.IsBot {
		return true
	}
	user := getUser(c)
	if user == nil {
		return false
	}
	return user.Admin || user.Id == userId
}
