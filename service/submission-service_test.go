package service

import (
	"testing"

	"gatherpass/auth"

	"github.com/stretchr/testify/assert"
)

func TestCreateSubmissionCreditsParticipantTotal(t *testing.T) {
	f := SetUp()
	defer TearDown()
	submissionService := NewSubmissionService(db)
	seasonUserService := NewSeasonUserService(db)

	submission, err := submissionService.CreateSubmission(f.CopperOre.Id, f.Gatherer.Id, 2, auth.UserActor(f.Gatherer.Id))
	assert.Nil(t, err)
	assert.Equal(t, 2, submission.Quantity)
	assert.Equal(t, 100, submission.TotalPointValue)
	assert.Equal(t, "Copper Ore", submission.SeasonItem.Item.Name)

	seasonUser, err := seasonUserService.GetSeasonUser(f.Season.Id, f.Gatherer.Id)
	assert.Nil(t, err)
	assert.Equal(t, 100, seasonUser.TotalPoints)
}

func TestCreateSubmissionRequiresRegistration(t *testing.T) {
	f := SetUp()
	defer TearDown()
	submissionService := NewSubmissionService(db)

	_, err := submissionService.CreateSubmission(f.CopperOre.Id, f.Outsider.Id, 1, auth.UserActor(f.Outsider.Id))
	assert.ErrorIs(t, err, ErrNotRegistered)

	submissions, err := submissionService.GetSubmissionsForSeason(f.Season.Id, f.Outsider.Id)
	assert.Nil(t, err)
	assert.Empty(t, submissions)
}

func TestCreateSubmissionUnknownSeasonItem(t *testing.T) {
	f := SetUp()
	defer TearDown()
	submissionService := NewSubmissionService(db)

	_, err := submissionService.CreateSubmission(99999, f.Gatherer.Id, 1, auth.UserActor(f.Gatherer.Id))
	assert.ErrorIs(t, err, ErrSeasonItemNotFound)
}

func TestCreateSubmissionRejectsNonPositiveQuantity(t *testing.T) {
	f := SetUp()
	defer TearDown()
	submissionService := NewSubmissionService(db)

	_, err := submissionService.CreateSubmission(f.CopperOre.Id, f.Gatherer.Id, 0, auth.UserActor(f.Gatherer.Id))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = submissionService.CreateSubmission(f.CopperOre.Id, f.Gatherer.Id, -3, auth.UserActor(f.Gatherer.Id))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateSubmissionAppliesPointDelta(t *testing.T) {
	f := SetUp()
	defer TearDown()
	submissionService := NewSubmissionService(db)
	seasonUserService := NewSeasonUserService(db)
	actor := auth.UserActor(f.Gatherer.Id)

	submission, err := submissionService.CreateSubmission(f.CopperOre.Id, f.Gatherer.Id, 2, actor)
	assert.Nil(t, err)

	updated, err := submissionService.UpdateSubmission(submission.Id, 5, actor)
	assert.Nil(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, 250, updated.TotalPointValue)

	seasonUser, err := seasonUserService.GetSeasonUser(f.Season.Id, f.Gatherer.Id)
	assert.Nil(t, err)
	assert.Equal(t, 250, seasonUser.TotalPoints)

	// shrinking the quantity debits the difference
	updated, err = submissionService.UpdateSubmission(submission.Id, 1, actor)
	assert.Nil(t, err)
	assert.Equal(t, 50, updated.TotalPointValue)

	seasonUser, err = seasonUserService.GetSeasonUser(f.Season.Id, f.Gatherer.Id)
	assert.Nil(t, err)
	assert.Equal(t, 50, seasonUser.TotalPoints)
}

func TestDeleteSubmissionDebitsParticipantTotal(t *testing.T) {
	f := SetUp()
	defer TearDown()
	submissionService := NewSubmissionService(db)
	seasonUserService := NewSeasonUserService(db)
	actor := auth.UserActor(f.Gatherer.Id)

	submission, err := submissionService.CreateSubmission(f.CopperOre.Id, f.Gatherer.Id, 3, actor)
	assert.Nil(t, err)

	err = submissionService.DeleteSubmission(submission.Id, actor)
	assert.Nil(t, err)

	seasonUser, err := seasonUserService.GetSeasonUser(f.Season.Id, f.Gatherer.Id)
	assert.Nil(t, err)
	assert.Equal(t, 0, seasonUser.TotalPoints)

	_, err = submissionService.GetSubmissionById(submission.Id)
	assert.NotNil(t, err)
}

func TestUserItemTotalsAggregateAcrossSubmissions(t *testing.T) {
	f := SetUp()
	defer TearDown()
	submissionService := NewSubmissionService(db)
	actor := auth.UserActor(f.Gatherer.Id)

	_, err := submissionService.CreateSubmission(f.CopperOre.Id, f.Gatherer.Id, 2, actor)
	assert.Nil(t, err)
	_, err = submissionService.CreateSubmission(f.IronOre.Id, f.Gatherer.Id, 4, actor)
	assert.Nil(t, err)
	_, err = submissionService.CreateSubmission(f.CopperOre.Id, f.Gatherer.Id, 1, actor)
	assert.Nil(t, err)

	totals, err := submissionService.GetUserItemTotals(f.Season.Id, f.Gatherer.Id)
	assert.Nil(t, err)
	assert.Len(t, totals, 2)

	byName := make(map[string]int)
	for _, total := range totals {
		byName[total.ItemName] = total.TotalQuantity
	}
	assert.Equal(t, 3, byName["Copper Ore"])
	assert.Equal(t, 4, byName["Iron Ore"])
}
