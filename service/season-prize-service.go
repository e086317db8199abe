package service

import (
	"gatherpass/repository"

	"gorm.io/gorm"
)

type SeasonPrizeService struct {
	seasonPrizeRepository *repository.SeasonPrizeRepository
}

func NewSeasonPrizeService(db *gorm.DB) *SeasonPrizeService {
	return &SeasonPrizeService{
		seasonPrizeRepository: repository.NewSeasonPrizeRepository(db),
	}
}

func (s *SeasonPrizeService) GetSeasonPrizeById(seasonPrizeId int) (*repository.SeasonPrize, error) {
	return s.seasonPrizeRepository.GetSeasonPrizeById(seasonPrizeId)
}

func (s *SeasonPrizeService) GetPrizesForSeason(seasonId int) ([]*repository.SeasonPrize, error) {
	return s.seasonPrizeRepository.GetPrizesForSeason(seasonId)
}

func (s *SeasonPrizeService) GetPrizesForSeasonRank(seasonRankId int) ([]*repository.SeasonPrize, error) {
	return s.seasonPrizeRepository.GetPrizesForSeasonRank(seasonRankId)
}

func (s *SeasonPrizeService) AttachPrizeToRank(seasonRankId int, prizeId int) (*repository.SeasonPrize, error) {
	seasonPrize := &repository.SeasonPrize{
		SeasonRankId: seasonRankId,
		PrizeId:      prizeId,
	}
	saved, err := s.seasonPrizeRepository.SaveSeasonPrize(seasonPrize)
	if err != nil {
		return nil, err
	}
	return s.seasonPrizeRepository.GetSeasonPrizeById(saved.Id)
}

func (s *SeasonPrizeService) DetachPrize(seasonPrizeId int) error {
	seasonPrize, err := s.seasonPrizeRepository.GetSeasonPrizeById(seasonPrizeId)
	if err != nil {
		return err
	}
	return s.seasonPrizeRepository.DeleteSeasonPrize(seasonPrize)
}
