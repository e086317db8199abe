package controller

import (
	"strconv"

	"gatherpass/repository"
	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ItemController struct {
	itemService *service.ItemService
}

func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{
		itemService: service.NewItemService(db),
	}
}

func setupItemController(db *gorm.DB) []RouteInfo {
	e := NewItemController(db)
	basePath := "/items"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getItemsHandler()},
		{Method: "GET", Path: "/:item_id", HandlerFunc: e.getItemByIdHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createItemHandler(), AdminOnly: true},
		{Method: "PATCH", Path: "/:item_id", HandlerFunc: e.updateItemHandler(), AdminOnly: true},
		{Method: "DELETE", Path: "/:item_id", HandlerFunc: e.deleteItemHandler(), AdminOnly: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id GetItems
// @Description Fetches all items, optionally filtered by name
// @Tags item
// @Produce json
// @Param name query string false "Name filter"
// @Success 200 {array} Item
// @Router /items [get]
func (e *ItemController) getItemsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := e.itemService.GetItems(c.Query("name"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(items, toItemResponse))
	}
}

// @id GetItemById
// @Description Fetches an item by id
// @Tags item
// @Produce json
// @Param item_id path int true "Item Id"
// @Success 200 {object} Item
// @Router /items/{item_id} [get]
func (e *ItemController) getItemByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemId, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		item, err := e.itemService.GetItemById(itemId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Item not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toItemResponse(item))
	}
}

// @id CreateItem
// @Description Creates a new item
// @Tags item
// @Accept json
// @Produce json
// @Param item body ItemCreate true "Item"
// @Success 201 {object} Item
// @Security BearerAuth
// @Router /items [post]
func (e *ItemController) createItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var itemCreate ItemCreate
		if err := c.BindJSON(&itemCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		item, err := e.itemService.CreateItem(itemCreate.toModel())
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toItemResponse(item))
	}
}

// @id UpdateItem
// @Description Updates an item
// @Tags item
// @Accept json
// @Produce json
// @Param item_id path int true "Item Id"
// @Param item body ItemCreate true "Item"
// @Success 200 {object} Item
// @Security BearerAuth
// @Router /items/{item_id} [patch]
func (e *ItemController) updateItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemId, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var itemUpdate ItemCreate
		if err := c.BindJSON(&itemUpdate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		item, err := e.itemService.UpdateItem(itemId, itemUpdate.toModel())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Item not found"})
			} else {
				c.JSON(400, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toItemResponse(item))
	}
}

// @id DeleteItem
// @Description Deletes an item
// @Tags item
// @Produce json
// @Param item_id path int true "Item Id"
// @Success 204
// @Security BearerAuth
// @Router /items/{item_id} [delete]
func (e *ItemController) deleteItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemId, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.itemService.DeleteItem(itemId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}

type ItemCreate struct {
	Name        string `json:"name"`
	LodestoneId string `json:"lodestone_id"`
}

func (i *ItemCreate) toModel() *repository.Item {
	return &repository.Item{
		Name:        i.Name,
		LodestoneId: i.LodestoneId,
	}
}

type Item struct {
	Id          int    `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	LodestoneId string `json:"lodestone_id"`
}

func toItemResponse(item *repository.Item) *Item {
	return &Item{
		Id:          item.Id,
		Name:        item.Name,
		LodestoneId: item.LodestoneId,
	}
}
