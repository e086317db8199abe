package service

import (
	"gatherpass/repository"

	"gorm.io/gorm"
)

type RankService struct {
	rankRepository *repository.RankRepository
}

func NewRankService(db *gorm.DB) *RankService {
	return &RankService{
		rankRepository: repository.NewRankRepository(db),
	}
}

func (s *RankService) GetRankById(rankId int) (*repository.Rank, error) {
	return s.rankRepository.GetRankById(rankId)
}

func (s *RankService) GetRanks() ([]*repository.Rank, error) {
	return s.rankRepository.GetRanks()
}

func (s *RankService) CreateRank(rank *repository.Rank) (*repository.Rank, error) {
	return s.rankRepository.SaveRank(rank)
}

func (s *RankService) UpdateRank(rankId int, updateRank *repository.Rank) (*repository.Rank, error) {
	rank, err := s.rankRepository.GetRankById(rankId)
	if err != nil {
		return nil, err
	}
	if updateRank.Name != "" {
		rank.Name = updateRank.Name
	}
	if updateRank.BadgeUrl != "" {
		rank.BadgeUrl = updateRank.BadgeUrl
	}
	return s.rankRepository.SaveRank(rank)
}

func (s *RankService) DeleteRank(rankId int) error {
	return s.rankRepository.DeleteRank(rankId)
}
