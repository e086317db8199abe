package service

import (
	"testing"
	"time"

	"gatherpass/auth"
	"gatherpass/repository"

	"github.com/stretchr/testify/assert"
)

func TestRegisterUserIsIdempotent(t *testing.T) {
	f := SetUp()
	defer TearDown()
	seasonUserService := NewSeasonUserService(db)
	submissionService := NewSubmissionService(db)

	seasonUser, err := seasonUserService.RegisterUser(f.Season.Id, f.Outsider.Id, auth.BotActor())
	assert.Nil(t, err)
	assert.Equal(t, 0, seasonUser.TotalPoints)

	_, err = submissionService.CreateSubmission(f.IronOre.Id, f.Outsider.Id, 3, auth.BotActor())
	assert.Nil(t, err)

	// registering again keeps the accumulated total
	again, err := seasonUserService.RegisterUser(f.Season.Id, f.Outsider.Id, auth.BotActor())
	assert.Nil(t, err)
	assert.Equal(t, seasonUser.Id, again.Id)
	assert.Equal(t, 30, again.TotalPoints)
}

func TestLeaderboardOrdersByTotalDescending(t *testing.T) {
	f := SetUp()
	defer TearDown()
	seasonUserService := NewSeasonUserService(db)
	submissionService := NewSubmissionService(db)

	_, err := seasonUserService.RegisterUser(f.Season.Id, f.Outsider.Id, auth.BotActor())
	assert.Nil(t, err)
	_, err = submissionService.CreateSubmission(f.CopperOre.Id, f.Gatherer.Id, 1, auth.UserActor(f.Gatherer.Id))
	assert.Nil(t, err)
	_, err = submissionService.CreateSubmission(f.CopperOre.Id, f.Outsider.Id, 2, auth.UserActor(f.Outsider.Id))
	assert.Nil(t, err)

	leaderboard, err := seasonUserService.GetLeaderboard(f.Season.Id)
	assert.Nil(t, err)
	assert.Len(t, leaderboard, 2)
	assert.Equal(t, f.Outsider.Id, leaderboard[0].UserId)
	assert.Equal(t, 100, leaderboard[0].TotalPoints)
	assert.Equal(t, f.Gatherer.Id, leaderboard[1].UserId)
}

func TestCreateSeasonRejectsInvertedDates(t *testing.T) {
	defer TearDown()
	seasonService := NewSeasonService(db)

	_, err := seasonService.CreateSeason(&repository.Season{
		Number:    7,
		Name:      "backwards",
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now(),
	})
	assert.ErrorIs(t, err, ErrInvalidSeasonDates)
}

func TestCreateUserRejectsDuplicateDiscordId(t *testing.T) {
	f := SetUp()
	defer TearDown()
	userService := NewUserService(db)

	_, err := userService.CreateUser(f.Gatherer.DiscordId, "someone else", "", auth.BotActor())
	assert.NotNil(t, err)
}

func TestMarkPrizeDelivered(t *testing.T) {
	f := SetUp()
	defer TearDown()
	promotionService := NewPromotionService(db)
	awardService := NewUserPrizeAwardService(db)

	result, err := promotionService.PromoteUser(f.Season.Id, f.Gatherer.Id, f.Bronze.Id, auth.BotActor())
	assert.Nil(t, err)
	assert.Len(t, result.AwardedPrizes, 1)

	award, err := awardService.MarkDelivered(result.AwardedPrizes[0].Id, "handed over at the guild house", auth.UserActor(42))
	assert.Nil(t, err)
	assert.True(t, award.Delivered)
	assert.NotNil(t, award.DeliveredAt)
	assert.Equal(t, "user:42", *award.DeliveredBy)
	assert.Equal(t, "handed over at the guild house", *award.Notes)
}
