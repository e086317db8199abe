package controller

import (
	"strconv"

	"gatherpass/repository"
	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SeasonUserController struct {
	seasonUserService *service.SeasonUserService
}

func NewSeasonUserController(db *gorm.DB) *SeasonUserController {
	return &SeasonUserController{
		seasonUserService: service.NewSeasonUserService(db),
	}
}

func setupSeasonUserController(db *gorm.DB) []RouteInfo {
	e := NewSeasonUserController(db)
	routes := []RouteInfo{
		{Method: "POST", Path: "/seasons/:season_id/users", HandlerFunc: e.registerUserHandler(), Authenticated: true},
		{Method: "GET", Path: "/seasons/:season_id/users/:user_id", HandlerFunc: e.getSeasonUserHandler()},
		{Method: "GET", Path: "/seasons/:season_id/leaderboard", HandlerFunc: e.getLeaderboardHandler()},
	}
	return routes
}

// @id RegisterUser
// @Description Enrolls a user in a season with a zero point total. Registering twice is a no-op.
// @Tags season-user
// @Accept json
// @Produce json
// @Param season_id path int true "Season Id"
// @Param registration body SeasonUserCreate true "Registration"
// @Success 201 {object} SeasonUser
// @Security BearerAuth
// @Router /seasons/{season_id}/users [post]
func (e *SeasonUserController) registerUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var seasonUserCreate SeasonUserCreate
		if err := c.BindJSON(&seasonUserCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		userId := seasonUserCreate.UserId
		if userId == 0 {
			user := getUser(c)
			if user == nil {
				c.JSON(400, gin.H{"error": "user_id is required"})
				return
			}
			userId = user.Id
		}
		if !canActFor(c, userId) {
			c.JSON(403, gin.H{"error": "Cannot register other users"})
			return
		}
		seasonUser, err := e.seasonUserService.RegisterUser(seasonId, userId, getActor(c))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toSeasonUserResponse(seasonUser))
	}
}

// @id GetSeasonUser
// @Description Fetches a user's registration and point total for a season
// @Tags season-user
// @Produce json
// @Param season_id path int true "Season Id"
// @Param user_id path int true "User Id"
// @Success 200 {object} SeasonUser
// @Router /seasons/{season_id}/users/{user_id} [get]
func (e *SeasonUserController) getSeasonUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonUser, err := e.seasonUserService.GetSeasonUser(seasonId, userId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "User is not registered for this season"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toSeasonUserResponse(seasonUser))
	}
}

// @id GetLeaderboard
// @Description Fetches a season's participants ordered by point total
// @Tags season-user
// @Produce json
// @Param season_id path int true "Season Id"
// @Success 200 {array} SeasonUser
// @Router /seasons/{season_id}/leaderboard [get]
func (e *SeasonUserController) getLeaderboardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		leaderboard, err := e.seasonUserService.GetLeaderboard(seasonId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(leaderboard, toSeasonUserResponse))
	}
}

type SeasonUserCreate struct {
	UserId int `json:"user_id"`
}

type SeasonUser struct {
	Id          int   `json:"id" binding:"required"`
	SeasonId    int   `json:"season_id" binding:"required"`
	UserId      int   `json:"user_id" binding:"required"`
	TotalPoints int   `json:"total_points" binding:"required"`
	User        *User `json:"user"`
}

func toSeasonUserResponse(seasonUser *repository.SeasonUser) *SeasonUser {
	response := &SeasonUser{
		Id:          seasonUser.Id,
		SeasonId:    seasonUser.SeasonId,
		UserId:      seasonUser.UserId,
		TotalPoints: seasonUser.TotalPoints,
	}
	if seasonUser.User != nil {
		response.User = toUserResponse(seasonUser.User)
	}
	return response
}
