package controller

import (
	"strconv"
	"time"

	"gatherpass/repository"
	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SeasonRankController struct {
	seasonRankService *service.SeasonRankService
}

func NewSeasonRankController(db *gorm.DB) *SeasonRankController {
	return &SeasonRankController{
		seasonRankService: service.NewSeasonRankService(db),
	}
}

func setupSeasonRankController(db *gorm.DB, cacheStore *persistence.InMemoryStore) []RouteInfo {
	e := NewSeasonRankController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/seasons/:season_id/ranks", HandlerFunc: cache.CachePage(cacheStore, time.Minute, e.getRanksForSeasonHandler())},
		{Method: "GET", Path: "/season-ranks/:season_rank_id", HandlerFunc: e.getSeasonRankByIdHandler()},
		{Method: "POST", Path: "/seasons/:season_id/ranks", HandlerFunc: e.addRankToSeasonHandler(), AdminOnly: true},
		{Method: "PATCH", Path: "/season-ranks/:season_rank_id", HandlerFunc: e.updateSeasonRankHandler(), AdminOnly: true},
		{Method: "DELETE", Path: "/season-ranks/:season_rank_id", HandlerFunc: e.removeRankFromSeasonHandler(), AdminOnly: true},
	}
	return routes
}

// @id GetRanksForSeason
// @Description Fetches a season's rank ladder ordered by rank number
// @Tags season-rank
// @Produce json
// @Param season_id path int true "Season Id"
// @Success 200 {array} SeasonRank
// @Router /seasons/{season_id}/ranks [get]
func (e *SeasonRankController) getRanksForSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonRanks, err := e.seasonRankService.GetRanksForSeason(seasonId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(seasonRanks, toSeasonRankResponse))
	}
}

// @id GetSeasonRankById
// @Description Fetches a season rank by id
// @Tags season-rank
// @Produce json
// @Param season_rank_id path int true "Season Rank Id"
// @Success 200 {object} SeasonRank
// @Router /season-ranks/{season_rank_id} [get]
func (e *SeasonRankController) getSeasonRankByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonRankId, err := strconv.Atoi(c.Param("season_rank_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonRank, err := e.seasonRankService.GetSeasonRankById(seasonRankId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Season rank not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toSeasonRankResponse(seasonRank))
	}
}

// @id AddRankToSeason
// @Description Places a rank on a season's ladder at a number and point threshold
// @Tags season-rank
// @Accept json
// @Produce json
// @Param season_id path int true "Season Id"
// @Param season_rank body SeasonRankCreate true "Season Rank"
// @Success 201 {object} SeasonRank
// @Security BearerAuth
// @Router /seasons/{season_id}/ranks [post]
func (e *SeasonRankController) addRankToSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var seasonRankCreate SeasonRankCreate
		if err := c.BindJSON(&seasonRankCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonRank, err := e.seasonRankService.AddRankToSeason(seasonId, seasonRankCreate.RankId, seasonRankCreate.Number, seasonRankCreate.RequiredPoints)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toSeasonRankResponse(seasonRank))
	}
}

// @id UpdateSeasonRank
// @Description Changes a season rank's number or point threshold
// @Tags season-rank
// @Accept json
// @Produce json
// @Param season_rank_id path int true "Season Rank Id"
// @Param season_rank body SeasonRankUpdate true "Season Rank"
// @Success 200 {object} SeasonRank
// @Security BearerAuth
// @Router /season-ranks/{season_rank_id} [patch]
func (e *SeasonRankController) updateSeasonRankHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonRankId, err := strconv.Atoi(c.Param("season_rank_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var seasonRankUpdate SeasonRankUpdate
		if err := c.BindJSON(&seasonRankUpdate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonRank, err := e.seasonRankService.UpdateSeasonRank(seasonRankId, seasonRankUpdate.Number, seasonRankUpdate.RequiredPoints)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Season rank not found"})
			} else {
				c.JSON(400, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toSeasonRankResponse(seasonRank))
	}
}

// @id RemoveRankFromSeason
// @Description Removes a rank from a season's ladder
// @Tags season-rank
// @Produce json
// @Param season_rank_id path int true "Season Rank Id"
// @Success 204
// @Security BearerAuth
// @Router /season-ranks/{season_rank_id} [delete]
func (e *SeasonRankController) removeRankFromSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonRankId, err := strconv.Atoi(c.Param("season_rank_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.seasonRankService.RemoveRankFromSeason(seasonRankId); err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Season rank not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(204, nil)
	}
}

type SeasonRankCreate struct {
	RankId         int `json:"rank_id" binding:"required"`
	Number         int `json:"number" binding:"required"`
	RequiredPoints int `json:"required_points" binding:"required"`
}

type SeasonRankUpdate struct {
	Number         int `json:"number"`
	RequiredPoints int `json:"required_points"`
}

type SeasonRank struct {
	Id             int   `json:"id" binding:"required"`
	SeasonId       int   `json:"season_id" binding:"required"`
	Number         int   `json:"number" binding:"required"`
	RequiredPoints int   `json:"required_points" binding:"required"`
	Rank           *Rank `json:"rank"`
}

func toSeasonRankResponse(seasonRank *repository.SeasonRank) *SeasonRank {
	response := &SeasonRank{
		Id:             seasonRank.Id,
		SeasonId:       seasonRank.SeasonId,
		Number:         seasonRank.Number,
		RequiredPoints: seasonRank.RequiredPoints,
	}
	if seasonRank.Rank != nil {
		response.Rank = toRankResponse(seasonRank.Rank)
	}
	return response
}
