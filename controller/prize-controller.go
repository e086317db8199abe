package controller

import (
	"strconv"

	"gatherpass/repository"
	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PrizeController struct {
	prizeService *service.PrizeService
}

func NewPrizeController(db *gorm.DB) *PrizeController {
	return &PrizeController{
		prizeService: service.NewPrizeService(db),
	}
}

func setupPrizeController(db *gorm.DB) []RouteInfo {
	e := NewPrizeController(db)
	basePath := "/prizes"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getPrizesHandler()},
		{Method: "GET", Path: "/:prize_id", HandlerFunc: e.getPrizeByIdHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createPrizeHandler(), AdminOnly: true},
		{Method: "PATCH", Path: "/:prize_id", HandlerFunc: e.updatePrizeHandler(), AdminOnly: true},
		{Method: "DELETE", Path: "/:prize_id", HandlerFunc: e.deletePrizeHandler(), AdminOnly: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id GetPrizes
// @Description Fetches all prizes
// @Tags prize
// @Produce json
// @Success 200 {array} Prize
// @Router /prizes [get]
func (e *PrizeController) getPrizesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		prizes, err := e.prizeService.GetPrizes()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(prizes, toPrizeResponse))
	}
}

// @id GetPrizeById
// @Description Fetches a prize by id
// @Tags prize
// @Produce json
// @Param prize_id path int true "Prize Id"
// @Success 200 {object} Prize
// @Router /prizes/{prize_id} [get]
func (e *PrizeController) getPrizeByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		prizeId, err := strconv.Atoi(c.Param("prize_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		prize, err := e.prizeService.GetPrizeById(prizeId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Prize not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toPrizeResponse(prize))
	}
}

// @id CreatePrize
// @Description Creates a new prize
// @Tags prize
// @Accept json
// @Produce json
// @Param prize body PrizeCreate true "Prize"
// @Success 201 {object} Prize
// @Security BearerAuth
// @Router /prizes [post]
func (e *PrizeController) createPrizeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var prizeCreate PrizeCreate
		if err := c.BindJSON(&prizeCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		model, err := prizeCreate.toModel()
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		prize, err := e.prizeService.CreatePrize(model)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toPrizeResponse(prize))
	}
}

// @id UpdatePrize
// @Description Updates a prize
// @Tags prize
// @Accept json
// @Produce json
// @Param prize_id path int true "Prize Id"
// @Param prize body PrizeCreate true "Prize"
// @Success 200 {object} Prize
// @Security BearerAuth
// @Router /prizes/{prize_id} [patch]
func (e *PrizeController) updatePrizeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		prizeId, err := strconv.Atoi(c.Param("prize_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var prizeUpdate PrizeCreate
		if err := c.BindJSON(&prizeUpdate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		model, err := prizeUpdate.toModel()
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		prize, err := e.prizeService.UpdatePrize(prizeId, model)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Prize not found"})
			} else {
				c.JSON(400, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toPrizeResponse(prize))
	}
}

// @id DeletePrize
// @Description Deletes a prize
// @Tags prize
// @Produce json
// @Param prize_id path int true "Prize Id"
// @Success 204
// @Security BearerAuth
// @Router /prizes/{prize_id} [delete]
func (e *PrizeController) deletePrizeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		prizeId, err := strconv.Atoi(c.Param("prize_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.prizeService.DeletePrize(prizeId); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}

type PrizeCreate struct {
	Description string `json:"description"`
	Value       int    `json:"value"`
	LodestoneId string `json:"lodestone_id"`
	DiscordRole string `json:"discord_role"`
}

func (p *PrizeCreate) toModel() (*repository.Prize, error) {
	prize := &repository.Prize{
		Description: p.Description,
		Value:       p.Value,
		LodestoneId: p.LodestoneId,
	}
	if p.DiscordRole != "" {
		discordRole, err := strconv.ParseInt(p.DiscordRole, 10, 64)
		if err != nil {
			return nil, err
		}
		prize.DiscordRole = discordRole
	}
	return prize, nil
}

type Prize struct {
	Id          int    `json:"id" binding:"required"`
	Description string `json:"description" binding:"required"`
	Value       int    `json:"value"`
	LodestoneId string `json:"lodestone_id"`
	DiscordRole string `json:"discord_role"`
}

func toPrizeResponse(prize *repository.Prize) *Prize {
	response := &Prize{
		Id:          prize.Id,
		Description: prize.Description,
		Value:       prize.Value,
		LodestoneId: prize.LodestoneId,
	}
	if prize.DiscordRole != 0 {
		response.DiscordRole = strconv.FormatInt(prize.DiscordRole, 10)
	}
	return response
}
