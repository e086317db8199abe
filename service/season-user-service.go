package service

import (
	"errors"

	"gatherpass/auth"
	"gatherpass/repository"

	"gorm.io/gorm"
)

type SeasonUserService struct {
	seasonUserRepository *repository.SeasonUserRepository
}

func NewSeasonUserService(db *gorm.DB) *SeasonUserService {
	return &SeasonUserService{
		seasonUserRepository: repository.NewSeasonUserRepository(db),
	}
}

func (s *SeasonUserService) GetSeasonUser(seasonId int, userId int) (*repository.SeasonUser, error) {
	return s.seasonUserRepository.GetSeasonUser(seasonId, userId)
}

func (s *SeasonUserService) GetLeaderboard(seasonId int) ([]*repository.SeasonUser, error) {
	return s.seasonUserRepository.GetLeaderboard(seasonId)
}

// RegisterUser enrolls a user in a season with a zero point total. Registering
// twice returns the existing row unchanged.
func (s *SeasonUserService) RegisterUser(seasonId int, userId int, actor auth.Actor) (*repository.SeasonUser, error) {
	existing, err := s.seasonUserRepository.GetSeasonUser(seasonId, userId)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	seasonUser := &repository.SeasonUser{
		SeasonId:  seasonId,
		UserId:    userId,
		CreatedBy: actor.AuditRef(),
		UpdatedBy: actor.AuditRef(),
	}
	if _, err := s.seasonUserRepository.SaveSeasonUser(seasonUser); err != nil {
		return nil, err
	}
	return s.seasonUserRepository.GetSeasonUser(seasonId, userId)
}
