package service

import (
	"testing"

	"gatherpass/auth"
	"gatherpass/repository"

	"github.com/stretchr/testify/assert"
)

func TestPromoteUserBackfillsLowerRanks(t *testing.T) {
	f := SetUp()
	defer TearDown()
	promotionService := NewPromotionService(db)

	result, err := promotionService.PromoteUser(f.Season.Id, f.Gatherer.Id, f.Gold.Id, auth.BotActor())
	assert.Nil(t, err)
	// bronze and silver were never awarded, so promoting straight to gold
	// grants all three
	assert.Len(t, result.AwardedRanks, 3)
	// one prize on bronze, two on gold, none on silver
	assert.Len(t, result.AwardedPrizes, 3)

	awarded, err := promotionService.GetUserRanksForSeason(f.Season.Id, f.Gatherer.Id)
	assert.Nil(t, err)
	assert.Len(t, awarded, 3)
	assert.Equal(t, "Bronze", awarded[0].SeasonRank.Rank.Name)
	assert.Equal(t, "Gold", awarded[2].SeasonRank.Rank.Name)
}

func TestPromoteUserAwardsNothingTwice(t *testing.T) {
	f := SetUp()
	defer TearDown()
	promotionService := NewPromotionService(db)

	result, err := promotionService.PromoteUser(f.Season.Id, f.Gatherer.Id, f.Bronze.Id, auth.BotActor())
	assert.Nil(t, err)
	assert.Len(t, result.AwardedRanks, 1)
	assert.Len(t, result.AwardedPrizes, 1)

	_, err = promotionService.PromoteUser(f.Season.Id, f.Gatherer.Id, f.Bronze.Id, auth.BotActor())
	assert.ErrorIs(t, err, ErrNothingToAward)

	// a later promotion only grants the ranks still missing
	result, err = promotionService.PromoteUser(f.Season.Id, f.Gatherer.Id, f.Silver.Id, auth.BotActor())
	assert.Nil(t, err)
	assert.Len(t, result.AwardedRanks, 1)
	assert.Equal(t, f.Silver.Id, result.AwardedRanks[0].SeasonRankId)
	assert.Empty(t, result.AwardedPrizes)
}

func TestPromoteUserUnknownRank(t *testing.T) {
	f := SetUp()
	defer TearDown()
	promotionService := NewPromotionService(db)

	_, err := promotionService.PromoteUser(f.Season.Id, f.Gatherer.Id, 99999, auth.BotActor())
	assert.ErrorIs(t, err, ErrRankNotInSeason)
}

func TestPromotionCandidatesInclusiveThreshold(t *testing.T) {
	f := SetUp()
	defer TearDown()
	promotionService := NewPromotionService(db)
	seasonUserRepository := repository.NewSeasonUserRepository(db)

	seasonUser, err := seasonUserRepository.GetSeasonUser(f.Season.Id, f.Gatherer.Id)
	assert.Nil(t, err)

	// exactly at the bronze threshold counts
	err = seasonUserRepository.AdjustTotalPoints(seasonUser.Id, 100, "test")
	assert.Nil(t, err)

	candidates, err := promotionService.GetPromotionCandidates(f.Season.Id)
	assert.Nil(t, err)
	assert.Len(t, candidates, 1)
	assert.Nil(t, candidates[0].CurrentRank)
	assert.Equal(t, f.Bronze.Id, candidates[0].EligibleRank.Id)

	_, err = promotionService.PromoteUser(f.Season.Id, f.Gatherer.Id, f.Bronze.Id, auth.BotActor())
	assert.Nil(t, err)

	candidates, err = promotionService.GetPromotionCandidates(f.Season.Id)
	assert.Nil(t, err)
	assert.Empty(t, candidates)

	// crossing the silver threshold makes them eligible again
	err = seasonUserRepository.AdjustTotalPoints(seasonUser.Id, 150, "test")
	assert.Nil(t, err)

	candidates, err = promotionService.GetPromotionCandidates(f.Season.Id)
	assert.Nil(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, f.Bronze.Id, candidates[0].CurrentRank.Id)
	assert.Equal(t, f.Silver.Id, candidates[0].EligibleRank.Id)
}

func TestUserSeasonSummary(t *testing.T) {
	f := SetUp()
	defer TearDown()
	promotionService := NewPromotionService(db)
	submissionService := NewSubmissionService(db)
	actor := auth.UserActor(f.Gatherer.Id)

	_, err := submissionService.CreateSubmission(f.CopperOre.Id, f.Gatherer.Id, 5, actor)
	assert.Nil(t, err)
	_, err = promotionService.PromoteUser(f.Season.Id, f.Gatherer.Id, f.Silver.Id, auth.BotActor())
	assert.Nil(t, err)

	summary, err := promotionService.GetUserSeasonSummary(f.Season.Id, f.Gatherer.Id)
	assert.Nil(t, err)
	assert.Equal(t, 250, summary.TotalPoints)
	assert.Equal(t, "Silver", summary.CurrentRank.Rank.Name)
	// the bronze prize came with the backfill
	assert.Len(t, summary.AwardedPrizes, 1)
	assert.Equal(t, "Minion", summary.AwardedPrizes[0].SeasonPrize.Prize.Description)
	assert.Len(t, summary.ItemSummary, 1)
	assert.Equal(t, 5, summary.ItemSummary[0].TotalQuantity)
}

func TestSummaryForUnregisteredUser(t *testing.T) {
	f := SetUp()
	defer TearDown()
	promotionService := NewPromotionService(db)

	_, err := promotionService.GetUserSeasonSummary(f.Season.Id, f.Outsider.Id)
	assert.NotNil(t, err)
}
