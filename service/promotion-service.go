package service

import (
	"time"

	"gatherpass/auth"
	"gatherpass/metrics"
	"gatherpass/repository"
	"gatherpass/utils"

	"gorm.io/gorm"
)

// PromotionResult carries only the rows created by one promotion, so callers
// can report exactly what was granted.
type PromotionResult struct {
	AwardedRanks  []*repository.SeasonUserRank
	AwardedPrizes []*repository.UserPrizeAward
}

// PromotionCandidate is one row of the read-only eligibility scan.
type PromotionCandidate struct {
	SeasonUser   *repository.SeasonUser
	CurrentRank  *repository.SeasonRank
	EligibleRank *repository.SeasonRank
}

// UserSeasonSummary aggregates a user's progress and rewards in one season.
type UserSeasonSummary struct {
	UserId        int
	SeasonId      int
	TotalPoints   int
	CurrentRank   *repository.SeasonRank
	AwardedPrizes []*repository.UserPrizeAward
	ItemSummary   []*repository.UserItemTotal
}

type PromotionService struct {
	db                       *gorm.DB
	seasonRankRepository     *repository.SeasonRankRepository
	seasonPrizeRepository    *repository.SeasonPrizeRepository
	seasonUserRepository     *repository.SeasonUserRepository
	seasonUserRankRepository *repository.SeasonUserRankRepository
	userPrizeAwardRepository *repository.UserPrizeAwardRepository
	submissionRepository     *repository.SubmissionRepository
	pointFeedService         *PointFeedService
}

func NewPromotionService(db *gorm.DB) *PromotionService {
	return &PromotionService{
		db:                       db,
		seasonRankRepository:     repository.NewSeasonRankRepository(db),
		seasonPrizeRepository:    repository.NewSeasonPrizeRepository(db),
		seasonUserRepository:     repository.NewSeasonUserRepository(db),
		seasonUserRankRepository: repository.NewSeasonUserRankRepository(db),
		userPrizeAwardRepository: repository.NewUserPrizeAwardRepository(db),
		submissionRepository:     repository.NewSubmissionRepository(db),
		pointFeedService:         NewPointFeedService(),
	}
}

func (s *PromotionService) GetUserRanksForSeason(seasonId int, userId int) ([]*repository.SeasonUserRank, error) {
	return s.seasonUserRankRepository.GetUserRanksForSeason(seasonId, userId)
}

// PromoteUser grants the target rank and backfills every lower rank the user
// has not been awarded yet, together with all prizes attached to the newly
// granted ranks. Re-running a promotion the user already satisfies is a no-op
// failure, not a mutation.
func (s *PromotionService) PromoteUser(seasonId int, userId int, targetSeasonRankId int, actor auth.Actor) (*PromotionResult, error) {
	seasonRanks, err := s.seasonRankRepository.GetRanksForSeason(seasonId)
	if err != nil {
		return nil, err
	}
	var target *repository.SeasonRank
	for _, seasonRank := range seasonRanks {
		if seasonRank.Id == targetSeasonRankId {
			target = seasonRank
		}
	}
	if target == nil {
		return nil, ErrRankNotInSeason
	}

	existingAwards, err := s.seasonUserRankRepository.GetUserRanksForSeason(seasonId, userId)
	if err != nil {
		return nil, err
	}
	awardedIds := make(map[int]bool)
	for _, award := range existingAwards {
		awardedIds[award.SeasonRankId] = true
	}

	backfill := utils.Filter(seasonRanks, func(seasonRank *repository.SeasonRank) bool {
		return seasonRank.Number <= target.Number && !awardedIds[seasonRank.Id]
	})
	if len(backfill) == 0 {
		return nil, ErrNothingToAward
	}

	seasonPrizes, err := s.seasonPrizeRepository.GetPrizesForSeason(seasonId)
	if err != nil {
		return nil, err
	}
	prizesByRank := make(map[int][]*repository.SeasonPrize)
	for _, seasonPrize := range seasonPrizes {
		prizesByRank[seasonPrize.SeasonRankId] = append(prizesByRank[seasonPrize.SeasonRankId], seasonPrize)
	}

	newRanks := make([]*repository.SeasonUserRank, 0, len(backfill))
	newPrizes := make([]*repository.UserPrizeAward, 0)
	for _, seasonRank := range backfill {
		newRanks = append(newRanks, &repository.SeasonUserRank{
			UserId:       userId,
			SeasonRankId: seasonRank.Id,
			SeasonRank:   seasonRank,
		})
		for _, seasonPrize := range prizesByRank[seasonRank.Id] {
			newPrizes = append(newPrizes, &repository.UserPrizeAward{
				UserId:        userId,
				SeasonPrizeId: seasonPrize.Id,
				SeasonPrize:   seasonPrize,
			})
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewSeasonUserRankRepository(tx).SaveAwards(newRanks); err != nil {
			return err
		}
		return repository.NewUserPrizeAwardRepository(tx).SaveAwards(newPrizes)
	})
	if err != nil {
		return nil, err
	}

	metrics.RanksAwardedCounter.Add(float64(len(newRanks)))
	metrics.PrizesAwardedCounter.Add(float64(len(newPrizes)))
	s.pointFeedService.Publish(&PointEvent{
		Type:     PointEventPromotion,
		SeasonId: seasonId,
		UserId:   userId,
		Actor:    actor.AuditRef(),
		RankNames: utils.Map(newRanks, func(award *repository.SeasonUserRank) string {
			return award.SeasonRank.Rank.Name
		}),
	})
	return &PromotionResult{AwardedRanks: newRanks, AwardedPrizes: newPrizes}, nil
}

// GetPromotionCandidates reports every participant whose point total now
// qualifies them for a rank above their highest awarded one. Read-only.
func (s *PromotionService) GetPromotionCandidates(seasonId int) ([]*PromotionCandidate, error) {
	start := time.Now()
	defer func() {
		metrics.PromotionScanDuration.Observe(time.Since(start).Seconds())
	}()

	seasonRanks, err := s.seasonRankRepository.GetRanksForSeason(seasonId)
	if err != nil {
		return nil, err
	}
	leaderboard, err := s.seasonUserRepository.GetLeaderboard(seasonId)
	if err != nil {
		return nil, err
	}
	awards, err := s.seasonUserRankRepository.GetAwardsForSeason(seasonId)
	if err != nil {
		return nil, err
	}

	highestAwarded := make(map[int]*repository.SeasonRank)
	for _, award := range awards {
		current, ok := highestAwarded[award.UserId]
		if !ok || award.SeasonRank.Number > current.Number {
			highestAwarded[award.UserId] = award.SeasonRank
		}
	}

	candidates := make([]*PromotionCandidate, 0)
	for _, seasonUser := range leaderboard {
		var eligible *repository.SeasonRank
		for i := len(seasonRanks) - 1; i >= 0; i-- {
			// threshold is inclusive
			if seasonRanks[i].RequiredPoints <= seasonUser.TotalPoints {
				eligible = seasonRanks[i]
				break
			}
		}
		if eligible == nil {
			continue
		}
		currentNumber := 0
		current := highestAwarded[seasonUser.UserId]
		if current != nil {
			currentNumber = current.Number
		}
		if eligible.Number > currentNumber {
			candidates = append(candidates, &PromotionCandidate{
				SeasonUser:   seasonUser,
				CurrentRank:  current,
				EligibleRank: eligible,
			})
		}
	}
	return candidates, nil
}

// GetUserSeasonSummary returns nil when the user is not registered for the
// season.
func (s *PromotionService) GetUserSeasonSummary(seasonId int, userId int) (*UserSeasonSummary, error) {
	seasonUser, err := s.seasonUserRepository.GetSeasonUser(seasonId, userId)
	if err != nil {
		return nil, err
	}
	userRanks, err := s.seasonUserRankRepository.GetUserRanksForSeason(seasonId, userId)
	if err != nil {
		return nil, err
	}
	awards, err := s.userPrizeAwardRepository.GetAwardsForUser(userId, seasonId)
	if err != nil {
		return nil, err
	}
	itemSummary, err := s.submissionRepository.GetUserItemTotals(seasonId, userId)
	if err != nil {
		return nil, err
	}

	summary := &UserSeasonSummary{
		UserId:        userId,
		SeasonId:      seasonId,
		TotalPoints:   seasonUser.TotalPoints,
		AwardedPrizes: awards,
		ItemSummary:   itemSummary,
	}
	if len(userRanks) > 0 {
		// ranks come back ordered by number ascending
		summary.CurrentRank = userRanks[len(userRanks)-1].SeasonRank
	}
	return summary, nil
}
