package service

import (
	"gatherpass/repository"

	"gorm.io/gorm"
)

type PrizeService struct {
	prizeRepository *repository.PrizeRepository
}

func NewPrizeService(db *gorm.DB) *PrizeService {
	return &PrizeService{
		prizeRepository: repository.NewPrizeRepository(db),
	}
}

func (s *PrizeService) GetPrizeById(prizeId int) (*repository.Prize, error) {
	return s.prizeRepository.GetPrizeById(prizeId)
}

func (s *PrizeService) GetPrizes() ([]*repository.Prize, error) {
	return s.prizeRepository.GetPrizes()
}

func (s *PrizeService) CreatePrize(prize *repository.Prize) (*repository.Prize, error) {
	return s.prizeRepository.SavePrize(prize)
}

func (s *PrizeService) UpdatePrize(prizeId int, updatePrize *repository.Prize) (*repository.Prize, error) {
	prize, err := s.prizeRepository.GetPrizeById(prizeId)
	if err != nil {
		return nil, err
	}
	if updatePrize.Description != "" {
		prize.Description = updatePrize.Description
	}
	if updatePrize.Value != 0 {
		prize.Value = updatePrize.Value
	}
	if updatePrize.LodestoneId != "" {
		prize.LodestoneId = updatePrize.LodestoneId
	}
	if updatePrize.DiscordRole != 0 {
		prize.DiscordRole = updatePrize.DiscordRole
	}
	return s.prizeRepository.SavePrize(prize)
}

func (s *PrizeService) DeletePrize(prizeId int) error {
	return s.prizeRepository.DeletePrize(prizeId)
}
