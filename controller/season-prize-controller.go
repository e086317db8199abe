package controller

import (
	"strconv"

	"gatherpass/repository"
	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SeasonPrizeController struct {
	seasonPrizeService *service.SeasonPrizeService
}

func NewSeasonPrizeController(db *gorm.DB) *SeasonPrizeController {
	return &SeasonPrizeController{
		seasonPrizeService: service.NewSeasonPrizeService(db),
	}
}

func setupSeasonPrizeController(db *gorm.DB) []RouteInfo {
	e := NewSeasonPrizeController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/seasons/:season_id/prizes", HandlerFunc: e.getPrizesForSeasonHandler()},
		{Method: "GET", Path: "/season-ranks/:season_rank_id/prizes", HandlerFunc: e.getPrizesForSeasonRankHandler()},
		{Method: "POST", Path: "/season-ranks/:season_rank_id/prizes", HandlerFunc: e.attachPrizeHandler(), AdminOnly: true},
		{Method: "DELETE", Path: "/season-prizes/:season_prize_id", HandlerFunc: e.detachPrizeHandler(), AdminOnly: true},
	}
	return routes
}

// @id GetPrizesForSeason
// @Description Fetches every prize attached to any rank of a season
// @Tags season-prize
// @Produce json
// @Param season_id path int true "Season Id"
// @Success 200 {array} SeasonPrize
// @Router /seasons/{season_id}/prizes [get]
func (e *SeasonPrizeController) getPrizesForSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonPrizes, err := e.seasonPrizeService.GetPrizesForSeason(seasonId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(seasonPrizes, toSeasonPrizeResponse))
	}
}

// @id GetPrizesForSeasonRank
// @Description Fetches the prizes attached to one season rank
// @Tags season-prize
// @Produce json
// @Param season_rank_id path int true "Season Rank Id"
// @Success 200 {array} SeasonPrize
// @Router /season-ranks/{season_rank_id}/prizes [get]
func (e *SeasonPrizeController) getPrizesForSeasonRankHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonRankId, err := strconv.Atoi(c.Param("season_rank_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonPrizes, err := e.seasonPrizeService.GetPrizesForSeasonRank(seasonRankId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(seasonPrizes, toSeasonPrizeResponse))
	}
}

// @id AttachPrizeToRank
// @Description Attaches a prize to a season rank
// @Tags season-prize
// @Accept json
// @Produce json
// @Param season_rank_id path int true "Season Rank Id"
// @Param season_prize body SeasonPrizeCreate true "Season Prize"
// @Success 201 {object} SeasonPrize
// @Security BearerAuth
// @Router /season-ranks/{season_rank_id}/prizes [post]
func (e *SeasonPrizeController) attachPrizeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonRankId, err := strconv.Atoi(c.Param("season_rank_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var seasonPrizeCreate SeasonPrizeCreate
		if err := c.BindJSON(&seasonPrizeCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonPrize, err := e.seasonPrizeService.AttachPrizeToRank(seasonRankId, seasonPrizeCreate.PrizeId)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toSeasonPrizeResponse(seasonPrize))
	}
}

// @id DetachPrize
// @Description Detaches a prize from its season rank
// @Tags season-prize
// @Produce json
// @Param season_prize_id path int true "Season Prize Id"
// @Success 204
// @Security BearerAuth
// @Router /season-prizes/{season_prize_id} [delete]
func (e *SeasonPrizeController) detachPrizeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonPrizeId, err := strconv.Atoi(c.Param("season_prize_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.seasonPrizeService.DetachPrize(seasonPrizeId); err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Season prize not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(204, nil)
	}
}

type SeasonPrizeCreate struct {
	PrizeId int `json:"prize_id" binding:"required"`
}

type SeasonPrize struct {
	Id           int    `json:"id" binding:"required"`
	SeasonRankId int    `json:"season_rank_id" binding:"required"`
	Prize        *Prize `json:"prize"`
}

func toSeasonPrizeResponse(seasonPrize *repository.SeasonPrize) *SeasonPrize {
	response := &SeasonPrize{
		Id:           seasonPrize.Id,
		SeasonRankId: seasonPrize.SeasonRankId,
	}
	if seasonPrize.Prize != nil {
		response.Prize = toPrizeResponse(seasonPrize.Prize)
	}
	return response
}
