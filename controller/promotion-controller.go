package controller

import (
	"errors"
	"strconv"
	"time"

	"gatherpass/repository"
	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PromotionController struct {
	promotionService *service.PromotionService
}

func NewPromotionController(db *gorm.DB) *PromotionController {
	return &PromotionController{
		promotionService: service.NewPromotionService(db),
	}
}

func setupPromotionController(db *gorm.DB) []RouteInfo {
	e := NewPromotionController(db)
	routes := []RouteInfo{
		{Method: "POST", Path: "/seasons/:season_id/users/:user_id/promotions", HandlerFunc: e.promoteUserHandler(), AdminOnly: true},
		{Method: "GET", Path: "/seasons/:season_id/promotion-candidates", HandlerFunc: e.getPromotionCandidatesHandler(), AdminOnly: true},
		{Method: "GET", Path: "/seasons/:season_id/users/:user_id/ranks", HandlerFunc: e.getUserRanksHandler()},
		{Method: "GET", Path: "/seasons/:season_id/users/:user_id/summary", HandlerFunc: e.getUserSummaryHandler()},
	}
	return routes
}

// @id PromoteUser
// @Description Grants a user a season rank plus every lower rank they are missing, together with the attached prizes
// @Tags promotion
// @Accept json
// @Produce json
// @Param season_id path int true "Season Id"
// @Param user_id path int true "User Id"
// @Param promotion body PromotionCreate true "Promotion"
// @Success 201 {object} PromotionResult
// @Security BearerAuth
// @Router /seasons/{season_id}/users/{user_id}/promotions [post]
func (e *PromotionController) promoteUserHandler() gin.HandlerFunc {
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
		var promotionCreate PromotionCreate
		if err := c.BindJSON(&promotionCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		result, err := e.promotionService.PromoteUser(seasonId, userId, promotionCreate.SeasonRankId, getActor(c))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrRankNotInSeason):
				c.JSON(404, gin.H{"error": err.Error()})
			case errors.Is(err, service.ErrNothingToAward):
				c.JSON(409, gin.H{"error": err.Error()})
			default:
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(201, toPromotionResultResponse(result))
	}
}

// @id GetPromotionCandidates
// @Description Fetches participants whose point totals qualify them for a rank above their current one
// @Tags promotion
// @Produce json
// @Param season_id path int true "Season Id"
// @Success 200 {array} PromotionCandidate
// @Security BearerAuth
// @Router /seasons/{season_id}/promotion-candidates [get]
func (e *PromotionController) getPromotionCandidatesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		candidates, err := e.promotionService.GetPromotionCandidates(seasonId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(candidates, toPromotionCandidateResponse))
	}
}

// @id GetUserRanks
// @Description Fetches the season ranks a user has been awarded, lowest first
// @Tags promotion
// @Produce json
// @Param season_id path int true "Season Id"
// @Param user_id path int true "User Id"
// @Success 200 {array} UserRankAward
// @Router /seasons/{season_id}/users/{user_id}/ranks [get]
func (e *PromotionController) getUserRanksHandler() gin.HandlerFunc {
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
		userRanks, err := e.promotionService.GetUserRanksForSeason(seasonId, userId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(userRanks, toUserRankAwardResponse))
	}
}

// @id GetUserSummary
// @Description Fetches a user's point total, current rank, prizes and per-item totals for a season
// @Tags promotion
// @Produce json
// @Param season_id path int true "Season Id"
// @Param user_id path int true "User Id"
// @Success 200 {object} UserSeasonSummary
// @Router /seasons/{season_id}/users/{user_id}/summary [get]
func (e *PromotionController) getUserSummaryHandler() gin.HandlerFunc {
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
		summary, err := e.promotionService.GetUserSeasonSummary(seasonId, userId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "User is not registered for this season"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toUserSeasonSummaryResponse(summary))
	}
}

type PromotionCreate struct {
	SeasonRankId int `json:"season_rank_id" binding:"required"`
}

type UserRankAward struct {
	Id         int         `json:"id" binding:"required"`
	UserId     int         `json:"user_id" binding:"required"`
	AwardedAt  time.Time   `json:"awarded_at" binding:"required"`
	SeasonRank *SeasonRank `json:"season_rank"`
}

type PromotionResult struct {
	AwardedRanks  []*UserRankAward  `json:"awarded_ranks" binding:"required"`
	AwardedPrizes []*UserPrizeAward `json:"awarded_prizes" binding:"required"`
}

type PromotionCandidate struct {
	SeasonUser   *SeasonUser `json:"season_user" binding:"required"`
	CurrentRank  *SeasonRank `json:"current_rank"`
	EligibleRank *SeasonRank `json:"eligible_rank" binding:"required"`
}

type UserSeasonSummary struct {
	UserId        int                         `json:"user_id" binding:"required"`
	SeasonId      int                         `json:"season_id" binding:"required"`
	TotalPoints   int                         `json:"total_points" binding:"required"`
	CurrentRank   *SeasonRank                 `json:"current_rank"`
	AwardedPrizes []*UserPrizeAward           `json:"awarded_prizes" binding:"required"`
	ItemSummary   []*repository.UserItemTotal `json:"item_summary" binding:"required"`
}

func toUserRankAwardResponse(award *repository.SeasonUserRank) *UserRankAward {
	response := &UserRankAward{
		Id:        award.Id,
		UserId:    award.UserId,
		AwardedAt: award.CreatedAt,
	}
	if award.SeasonRank != nil {
		response.SeasonRank = toSeasonRankResponse(award.SeasonRank)
	}
	return response
}

func toPromotionResultResponse(result *service.PromotionResult) *PromotionResult {
	return &PromotionResult{
		AwardedRanks:  utils.Map(result.AwardedRanks, toUserRankAwardResponse),
		AwardedPrizes: utils.Map(result.AwardedPrizes, toUserPrizeAwardResponse),
	}
}

func toPromotionCandidateResponse(candidate *service.PromotionCandidate) *PromotionCandidate {
	response := &PromotionCandidate{
		SeasonUser: toSeasonUserResponse(candidate.SeasonUser),
	}
	if candidate.CurrentRank != nil {
		response.CurrentRank = toSeasonRankResponse(candidate.CurrentRank)
	}
	if candidate.EligibleRank != nil {
		response.EligibleRank = toSeasonRankResponse(candidate.EligibleRank)
	}
	return response
}

func toUserSeasonSummaryResponse(summary *service.UserSeasonSummary) *UserSeasonSummary {
	response := &UserSeasonSummary{
		UserId:        summary.UserId,
		SeasonId:      summary.SeasonId,
		TotalPoints:   summary.TotalPoints,
		AwardedPrizes: utils.Map(summary.AwardedPrizes, toUserPrizeAwardResponse),
		ItemSummary:   summary.ItemSummary,
	}
	if summary.CurrentRank != nil {
		response.CurrentRank = toSeasonRankResponse(summary.CurrentRank)
	}
	return response
}
