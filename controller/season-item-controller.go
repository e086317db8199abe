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

type SeasonItemController struct {
	seasonItemService *service.SeasonItemService
}

func NewSeasonItemController(db *gorm.DB) *SeasonItemController {
	return &SeasonItemController{
		seasonItemService: service.NewSeasonItemService(db),
	}
}

func setupSeasonItemController(db *gorm.DB, cacheStore *persistence.InMemoryStore) []RouteInfo {
	e := NewSeasonItemController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/seasons/:season_id/items", HandlerFunc: cache.CachePage(cacheStore, time.Minute, e.getItemsForSeasonHandler())},
		{Method: "GET", Path: "/season-items/:season_item_id", HandlerFunc: e.getSeasonItemByIdHandler()},
		{Method: "POST", Path: "/seasons/:season_id/items", HandlerFunc: e.addItemToSeasonHandler(), AdminOnly: true},
		{Method: "PATCH", Path: "/season-items/:season_item_id", HandlerFunc: e.updateSeasonItemHandler(), AdminOnly: true},
		{Method: "DELETE", Path: "/season-items/:season_item_id", HandlerFunc: e.removeItemFromSeasonHandler(), AdminOnly: true},
	}
	return routes
}

// @id GetItemsForSeason
// @Description Fetches the items submittable in a season with their point values
// @Tags season-item
// @Produce json
// @Param season_id path int true "Season Id"
// @Success 200 {array} SeasonItem
// @Router /seasons/{season_id}/items [get]
func (e *SeasonItemController) getItemsForSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonItems, err := e.seasonItemService.GetItemsForSeason(seasonId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(seasonItems, toSeasonItemResponse))
	}
}

// @id GetSeasonItemById
// @Description Fetches a season item by id
// @Tags season-item
// @Produce json
// @Param season_item_id path int true "Season Item Id"
// @Success 200 {object} SeasonItem
// @Router /season-items/{season_item_id} [get]
func (e *SeasonItemController) getSeasonItemByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonItemId, err := strconv.Atoi(c.Param("season_item_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonItem, err := e.seasonItemService.GetSeasonItemById(seasonItemId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Season item not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toSeasonItemResponse(seasonItem))
	}
}

// @id AddItemToSeason
// @Description Makes an item submittable in a season at a point value
// @Tags season-item
// @Accept json
// @Produce json
// @Param season_id path int true "Season Id"
// @Param season_item body SeasonItemCreate true "Season Item"
// @Success 201 {object} SeasonItem
// @Security BearerAuth
// @Router /seasons/{season_id}/items [post]
func (e *SeasonItemController) addItemToSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var seasonItemCreate SeasonItemCreate
		if err := c.BindJSON(&seasonItemCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonItem, err := e.seasonItemService.AddItemToSeason(seasonId, seasonItemCreate.ItemId, seasonItemCreate.PointValue)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toSeasonItemResponse(seasonItem))
	}
}

// @id UpdateSeasonItem
// @Description Changes the point value of a season item
// @Tags season-item
// @Accept json
// @Produce json
// @Param season_item_id path int true "Season Item Id"
// @Param season_item body SeasonItemUpdate true "Season Item"
// @Success 200 {object} SeasonItem
// @Security BearerAuth
// @Router /season-items/{season_item_id} [patch]
func (e *SeasonItemController) updateSeasonItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonItemId, err := strconv.Atoi(c.Param("season_item_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var seasonItemUpdate SeasonItemUpdate
		if err := c.BindJSON(&seasonItemUpdate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		seasonItem, err := e.seasonItemService.UpdatePointValue(seasonItemId, seasonItemUpdate.PointValue)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Season item not found"})
			} else {
				c.JSON(400, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toSeasonItemResponse(seasonItem))
	}
}

// @id RemoveItemFromSeason
// @Description Removes an item from a season
// @Tags season-item
// @Produce json
// @Param season_item_id path int true "Season Item Id"
// @Success 204
// @Security BearerAuth
// @Router /season-items/{season_item_id} [delete]
func (e *SeasonItemController) removeItemFromSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonItemId, err := strconv.Atoi(c.Param("season_item_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.seasonItemService.RemoveItemFromSeason(seasonItemId); err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Season item not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(204, nil)
	}
}

type SeasonItemCreate struct {
	ItemId     int `json:"item_id" binding:"required"`
	PointValue int `json:"point_value" binding:"required"`
}

type SeasonItemUpdate struct {
	PointValue int `json:"point_value" binding:"required"`
}

type SeasonItem struct {
	Id         int   `json:"id" binding:"required"`
	SeasonId   int   `json:"season_id" binding:"required"`
	PointValue int   `json:"point_value" binding:"required"`
	Item       *Item `json:"item"`
}

func toSeasonItemResponse(seasonItem *repository.SeasonItem) *SeasonItem {
	response := &SeasonItem{
		Id:         seasonItem.Id,
		SeasonId:   seasonItem.SeasonId,
		PointValue: seasonItem.PointValue,
	}
	if seasonItem.Item != nil {
		response.Item = toItemResponse(seasonItem.Item)
	}
	return response
}
