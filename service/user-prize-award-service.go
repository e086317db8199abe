package service

import (
	"time"

	"gatherpass/auth"
	"gatherpass/repository"

	"gorm.io/gorm"
)

type UserPrizeAwardService struct {
	userPrizeAwardRepository *repository.UserPrizeAwardRepository
}

func NewUserPrizeAwardService(db *gorm.DB) *UserPrizeAwardService {
	return &UserPrizeAwardService{
		userPrizeAwardRepository: repository.NewUserPrizeAwardRepository(db),
	}
}

func (s *UserPrizeAwardService) GetAwardById(awardId int) (*repository.UserPrizeAward, error) {
	return s.userPrizeAwardRepository.GetAwardById(awardId)
}

// GetAwardsForUser with seasonId 0 returns awards across all seasons.
func (s *UserPrizeAwardService) GetAwardsForUser(userId int, seasonId int) ([]*repository.UserPrizeAward, error) {
	return s.userPrizeAwardRepository.GetAwardsForUser(userId, seasonId)
}

// MarkDelivered records that the prize was handed over in game.
func (s *UserPrizeAwardService) MarkDelivered(awardId int, notes string, actor auth.Actor) (*repository.UserPrizeAward, error) {
	award, err := s.userPrizeAwardRepository.GetAwardById(awardId)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	deliveredBy := actor.AuditRef()
	award.Delivered = true
	award.DeliveredAt = &now
	award.DeliveredBy = &deliveredBy
	if notes != "" {
		award.Notes = &notes
	}
	return s.userPrizeAwardRepository.SaveAward(award)
}
