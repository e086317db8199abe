package controller

import (
	"strconv"

	"gatherpass/repository"
	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RankController struct {
	rankService *service.RankService
}

func NewRankController(db *gorm.DB) *RankController {
	return &RankController{
		rankService: service.NewRankService(db),
	}
}

func setupRankController(db *gorm.DB) []RouteInfo {
	e := NewRankController(db)
	basePath := "/ranks"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getRanksHandler()},
		{Method: "GET", Path: "/:rank_id", HandlerFunc: e.getRankByIdHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createRankHandler(), AdminOnly: true},
		{Method: "PATCH", Path: "/:rank_id", HandlerFunc: e.updateRankHandler(), AdminOnly: true},
		{Method: "DELETE", Path: "/:rank_id", HandlerFunc: e.deleteRankHandler(), AdminOnly: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id GetRanks
// @Description Fetches all ranks
// @Tags rank
// @Produce json
// @Success 200 {array} Rank
// @Router /ranks [get]
func (e *RankController) getRanksHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ranks, err := e.rankService.GetRanks()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(ranks, toRankResponse))
	}
}

// @id GetRankById
// @Description Fetches a rank by id
// @Tags rank
// @Produce json
// @Param rank_id path int true "Rank Id"
// @Success 200 {object} Rank
// @Router /ranks/{rank_id} [get]
func (e *RankController) getRankByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rankId, err := strconv.Atoi(c.Param("rank_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		rank, err := e.rankService.GetRankById(rankId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Rank not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toRankResponse(rank))
	}
}

// @id CreateRank
// @Description Creates a new rank
// @Tags rank
// @Accept json
// @Produce json
// @Param rank body RankCreate true "Rank"
// @Success 201 {object} Rank
// @Security BearerAuth
// @Router /ranks [post]
func (e *RankController) createRankHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var rankCreate RankCreate
		if err := c.BindJSON(&rankCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		rank, err := e.rankService.CreateRank(rankCreate.toModel())
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toRankResponse(rank))
	}
}

// @id UpdateRank
// @Description Updates a rank
// @Tags rank
// @Accept json
// @Produce json
// @Param rank_id path int true "Rank Id"
// @Param rank body RankCreate true "Rank"
// @Success 200 {object} Rank
// @Security BearerAuth
// @Router /ranks/{rank_id} [patch]
func (e *RankController) updateRankHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rankId, err := strconv.Atoi(c.Param("rank_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var rankUpdate RankCreate
		if err := c.BindJSON(&rankUpdate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		rank, err := e.rankService.UpdateRank(rankId, rankUpdate.toModel())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Rank not found"})
			} else {
				c.JSON(400, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toRankResponse(rank))
	}
}

// @id DeleteRank
// @Description Deletes a rank
// @Tags rank
// @Produce json
// @Param rank_id path int true "Rank Id"
// @Success 204
// @Security BearerAuth
// @Router /ranks/{rank_id} [delete]
func (e *RankController) deleteRankHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rankId, err := strconv.Atoi(c.Param("rank_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.rankService.DeleteRank(rankId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}

type RankCreate struct {
	Name     string `json:"name"`
	BadgeUrl string `json:"badge_url"`
}

func (r *RankCreate) toModel() *repository.Rank {
	return &repository.Rank{
		Name:     r.Name,
		BadgeUrl: r.BadgeUrl,
	}
}

type Rank struct {
	Id       int    `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	BadgeUrl string `json:"badge_url"`
}

func toRankResponse(rank *repository.Rank) *Rank {
	return &Rank{
		Id:       rank.Id,
		Name:     rank.Name,
		BadgeUrl: rank.BadgeUrl,
	}
}
