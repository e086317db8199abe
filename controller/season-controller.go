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

type SeasonController struct {
	seasonService *service.SeasonService
}

func NewSeasonController(db *gorm.DB) *SeasonController {
	return &SeasonController{
		seasonService: service.NewSeasonService(db),
	}
}

func setupSeasonController(db *gorm.DB, cacheStore *persistence.InMemoryStore) []RouteInfo {
	e := NewSeasonController(db)
	basePath := "/seasons"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: cache.CachePage(cacheStore, time.Minute, e.getSeasonsHandler())},
		{Method: "GET", Path: "/current", HandlerFunc: e.getCurrentSeasonHandler()},
		{Method: "GET", Path: "/latest", HandlerFunc: e.getLatestSeasonHandler()},
		{Method: "GET", Path: "/:season_id", HandlerFunc: e.getSeasonByIdHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createSeasonHandler(), AdminOnly: true},
		{Method: "PATCH", Path: "/:season_id", HandlerFunc: e.updateSeasonHandler(), AdminOnly: true},
		{Method: "DELETE", Path: "/:season_id", HandlerFunc: e.deleteSeasonHandler(), AdminOnly: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id GetSeasons
// @Description Fetches all seasons, optionally filtered by name
// @Tags season
// @Produce json
// @Param name query string false "Name filter"
// @Success 200 {array} Season
// @Router /seasons [get]
func (e *SeasonController) getSeasonsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasons, err := e.seasonService.GetSeasons(c.Query("name"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(seasons, toSeasonResponse))
	}
}

// @id GetCurrentSeason
// @Description Fetches the season whose date window contains now
// @Tags season
// @Produce json
// @Success 200 {object} Season
// @Router /seasons/current [get]
func (e *SeasonController) getCurrentSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		season, err := e.seasonService.GetCurrentSeason()
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "No season is currently running"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toSeasonResponse(season))
	}
}

// @id GetLatestSeason
// @Description Fetches the season with the highest number
// @Tags season
// @Produce json
// @Success 200 {object} Season
// @Router /seasons/latest [get]
func (e *SeasonController) getLatestSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		season, err := e.seasonService.GetLatestSeason()
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "No seasons exist"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toSeasonResponse(season))
	}
}

// @id GetSeasonById
// @Description Fetches a season by id
// @Tags season
// @Produce json
// @Param season_id path int true "Season Id"
// @Success 200 {object} Season
// @Router /seasons/{season_id} [get]
func (e *SeasonController) getSeasonByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		season, err := e.seasonService.GetSeasonById(seasonId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Season not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toSeasonResponse(season))
	}
}

// @id CreateSeason
// @Description Creates a new season
// @Tags season
// @Accept json
// @Produce json
// @Param season body SeasonCreate true "Season"
// @Success 201 {object} Season
// @Security BearerAuth
// @Router /seasons [post]
func (e *SeasonController) createSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var seasonCreate SeasonCreate
		if err := c.BindJSON(&seasonCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		season, err := e.seasonService.CreateSeason(seasonCreate.toModel())
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toSeasonResponse(season))
	}
}

// @id UpdateSeason
// @Description Updates a season
// @Tags season
// @Accept json
// @Produce json
// @Param season_id path int true "Season Id"
// @Param season body SeasonCreate true "Season"
// @Success 200 {object} Season
// @Security BearerAuth
// @Router /seasons/{season_id} [patch]
func (e *SeasonController) updateSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var seasonUpdate SeasonCreate
		if err := c.BindJSON(&seasonUpdate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		season, err := e.seasonService.UpdateSeason(seasonId, seasonUpdate.toModel())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Season not found"})
			} else {
				c.JSON(400, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toSeasonResponse(season))
	}
}

// @id DeleteSeason
// @Description Deletes a season and everything attached to it
// @Tags season
// @Produce json
// @Param season_id path int true "Season Id"
// @Success 204
// @Security BearerAuth
// @Router /seasons/{season_id} [delete]
func (e *SeasonController) deleteSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.seasonService.DeleteSeason(seasonId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}

type SeasonCreate struct {
	Number    int       `json:"number"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (s *SeasonCreate) toModel() *repository.Season {
	return &repository.Season{
		Number:    s.Number,
		Name:      s.Name,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
	}
}

type Season struct {
	Id        int       `json:"id" binding:"required"`
	Number    int       `json:"number" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

func toSeasonResponse(season *repository.Season) *Season {
	return &Season{
		Id:        season.Id,
		Number:    season.Number,
		Name:      season.Name,
		StartDate: season.StartDate,
		EndDate:   season.EndDate,
	}
}
