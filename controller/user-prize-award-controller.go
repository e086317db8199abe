package controller

import (
	"strconv"
	"time"

	"gatherpass/repository"
	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserPrizeAwardController struct {
	userPrizeAwardService *service.UserPrizeAwardService
}

func NewUserPrizeAwardController(db *gorm.DB) *UserPrizeAwardController {
	return &UserPrizeAwardController{
		userPrizeAwardService: service.NewUserPrizeAwardService(db),
	}
}

func setupUserPrizeAwardController(db *gorm.DB) []RouteInfo {
	e := NewUserPrizeAwardController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/users/:user_id/prize-awards", HandlerFunc: e.getAwardsForUserHandler(), Authenticated: true},
		{Method: "POST", Path: "/prize-awards/:award_id/delivered", HandlerFunc: e.markDeliveredHandler(), AdminOnly: true},
	}
	return routes
}

// @id GetAwardsForUser
// @Description Fetches a user's prize awards, optionally scoped to one season
// @Tags prize-award
// @Produce json
// @Param user_id path int true "User Id"
// @Param season_id query int false "Season Id"
// @Success 200 {array} UserPrizeAward
// @Security BearerAuth
// @Router /users/{user_id}/prize-awards [get]
func (e *UserPrizeAwardController) getAwardsForUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonId := 0
		if seasonQuery := c.Query("season_id"); seasonQuery != "" {
			seasonId, err = strconv.Atoi(seasonQuery)
			if err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
		}
		awards, err := e.userPrizeAwardService.GetAwardsForUser(userId, seasonId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(awards, toUserPrizeAwardResponse))
	}
}

// @id MarkAwardDelivered
// @Description Marks a prize award as handed over in game
// @Tags prize-award
// @Accept json
// @Produce json
// @Param award_id path int true "Award Id"
// @Param delivery body AwardDelivery true "Delivery"
// @Success 200 {object} UserPrizeAward
// @Security BearerAuth
// @Router /prize-awards/{award_id}/delivered [post]
func (e *UserPrizeAwardController) markDeliveredHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		awardId, err := strconv.Atoi(c.Param("award_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var delivery AwardDelivery
		if err := c.BindJSON(&delivery); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		award, err := e.userPrizeAwardService.MarkDelivered(awardId, delivery.Notes, getActor(c))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Award not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toUserPrizeAwardResponse(award))
	}
}

type AwardDelivery struct {
	Notes string `json:"notes"`
}

type UserPrizeAward struct {
	Id          int          `json:"id" binding:"required"`
	UserId      int          `json:"user_id" binding:"required"`
	Delivered   bool         `json:"delivered" binding:"required"`
	AwardedAt   time.Time    `json:"awarded_at" binding:"required"`
	DeliveredAt *time.Time   `json:"delivered_at"`
	Notes       *string      `json:"notes"`
	SeasonPrize *SeasonPrize `json:"season_prize"`
}

func toUserPrizeAwardResponse(award *repository.UserPrizeAward) *UserPrizeAward {
	response := &UserPrizeAward{
		Id:          award.Id,
		UserId:      award.UserId,
		Delivered:   award.Delivered,
		AwardedAt:   award.AwardedAt,
		DeliveredAt: award.DeliveredAt,
		Notes:       award.Notes,
	}
	if award.SeasonPrize != nil {
		response.SeasonPrize = toSeasonPrizeResponse(award.SeasonPrize)
	}
	return response
}
