package repository

import (
	"time"

	"gorm.io/gorm"
)

type Season struct {
	Id        int       `gorm:"primaryKey"`
	Number    int       `gorm:"not null;uniqueIndex"`
	Name      string    `gorm:"not null;uniqueIndex"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type SeasonRepository struct {
	DB *gorm.DB
}

func NewSeasonRepository(db *gorm.DB) *SeasonRepository {
	return &SeasonRepository{DB: db}
}

func (r *SeasonRepository) GetSeasonById(seasonId int) (*Season, error) {
	var season Season
	result := r.DB.First(&season, seasonId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &season, nil
}

func (r *SeasonRepository) GetSeasons(nameQuery string) ([]*Season, error) {
	var seasons []*Season
	query := r.DB
	if nameQuery != "" {
		query = query.Where("name ILIKE ?", "%"+nameQuery+"%")
	}
	result := query.Order("number asc").Find(&seasons)
	if result.Error != nil {
		return nil, result.Error
	}
	return seasons, nil
}

// GetCurrentSeason returns the season whose date window contains now.
func (r *SeasonRepository) GetCurrentSeason() (*Season, error) {
	var season Season
	now := time.Now()
	result := r.DB.Where("start_date <= ? AND end_date >= ?", now, now).Order("number desc").First(&season)
	if result.Error != nil {
		return nil, result.Error
	}
	return &season, nil
}

// GetLatestSeason returns the season with the highest sequence number.
func (r *SeasonRepository) GetLatestSeason() (*Season, error) {
	var season Season
	result := r.DB.Order("number desc").First(&season)
	if result.Error != nil {
		return nil, result.Error
	}
	return &season, nil
}

func (r *SeasonRepository) SaveSeason(season *Season) (*Season, error) {
	result := r.DB.Save(season)
	if result.Error != nil {
		return nil, result.Error
	}
	return season, nil
}

func (r *SeasonRepository) DeleteSeason(seasonId int) error {
	return r.DB.Delete(&Season{Id: seasonId}).Error
}
