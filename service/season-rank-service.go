package service

import (
	"gatherpass/repository"

	"gorm.io/gorm"
)

type SeasonRankService struct {
	seasonRankRepository *repository.SeasonRankRepository
}

func NewSeasonRankService(db *gorm.DB) *SeasonRankService {
	return &SeasonRankService{
		seasonRankRepository: repository.NewSeasonRankRepository(db),
	}
}

func (s *SeasonRankService) GetSeasonRankById(seasonRankId int) (*repository.SeasonRank, error) {
	return s.seasonRankRepository.GetSeasonRankById(seasonRankId)
}

func (s *SeasonRankService) GetRanksForSeason(seasonId int) ([]*repository.SeasonRank, error) {
	return s.seasonRankRepository.GetRanksForSeason(seasonId)
}

func (s *SeasonRankService) AddRankToSeason(seasonId int, rankId int, number int, requiredPoints int) (*repository.SeasonRank, error) {
	seasonRank := &repository.SeasonRank{
		SeasonId:       seasonId,
		RankId:         rankId,
		Number:         number,
		RequiredPoints: requiredPoints,
	}
	saved, err := s.seasonRankRepository.SaveSeasonRank(seasonRank)
	if err != nil {
		return nil, err
	}
	return s.seasonRankRepository.GetSeasonRankById(saved.Id)
}

func (s *SeasonRankService) UpdateSeasonRank(seasonRankId int, number int, requiredPoints int) (*repository.SeasonRank, error) {
	seasonRank, err := s.seasonRankRepository.GetSeasonRankById(seasonRankId)
	if err != nil {
		return nil, err
	}
	if number != 0 {
		seasonRank.Number = number
	}
	if requiredPoints != 0 {
		seasonRank.RequiredPoints = requiredPoints
	}
	if _, err := s.seasonRankRepository.SaveSeasonRank(seasonRank); err != nil {
		return nil, err
	}
	return s.seasonRankRepository.GetSeasonRankById(seasonRankId)
}

func (s *SeasonRankService) RemoveRankFromSeason(seasonRankId int) error {
	seasonRank, err := s.seasonRankRepository.GetSeasonRankById(seasonRankId)
	if err != nil {
		return err
	}
	return s.seasonRankRepository.DeleteSeasonRank(seasonRank)
}
