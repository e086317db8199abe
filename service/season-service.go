package service

import (
	"gatherpass/repository"

	"gorm.io/gorm"
)

type SeasonService struct {
	seasonRepository *repository.SeasonRepository
}

func NewSeasonService(db *gorm.DB) *SeasonService {
	return &SeasonService{
		seasonRepository: repository.NewSeasonRepository(db),
	}
}

func (s *SeasonService) GetSeasonById(seasonId int) (*repository.Season, error) {
	return s.seasonRepository.GetSeasonById(seasonId)
}

func (s *SeasonService) GetSeasons(nameQuery string) ([]*repository.Season, error) {
	return s.seasonRepository.GetSeasons(nameQuery)
}

func (s *SeasonService) GetCurrentSeason() (*repository.Season, error) {
	return s.seasonRepository.GetCurrentSeason()
}

func (s *SeasonService) GetLatestSeason() (*repository.Season, error) {
	return s.seasonRepository.GetLatestSeason()
}

func (s *SeasonService) CreateSeason(season *repository.Season) (*repository.Season, error) {
	if season.StartDate.After(season.EndDate) {
		return nil, ErrInvalidSeasonDates
	}
	return s.seasonRepository.SaveSeason(season)
}

func (s *SeasonService) UpdateSeason(seasonId int, updateSeason *repository.Season) (*repository.Season, error) {
	season, err := s.seasonRepository.GetSeasonById(seasonId)
	if err != nil {
		return nil, err
	}
	if updateSeason.Name != "" {
		season.Name = updateSeason.Name
	}
	if updateSeason.Number != 0 {
		season.Number = updateSeason.Number
	}
	if !updateSeason.StartDate.IsZero() {
		season.StartDate = updateSeason.StartDate
	}
	if !updateSeason.EndDate.IsZero() {
		season.EndDate = updateSeason.EndDate
	}
	if season.StartDate.After(season.EndDate) {
		return nil, ErrInvalidSeasonDates
	}
	return s.seasonRepository.SaveSeason(season)
}

func (s *SeasonService) DeleteSeason(seasonId int) error {
	return s.seasonRepository.DeleteSeason(seasonId)
}
