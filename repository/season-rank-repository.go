package repository

import (
	"time"

	"gorm.io/gorm"
)

type SeasonRank struct {
	Id             int       `gorm:"primaryKey"`
	SeasonId       int       `gorm:"not null;uniqueIndex:idx_season_rank"`
	RankId         int       `gorm:"not null;uniqueIndex:idx_season_rank"`
	Number         int       `gorm:"not null"`
	RequiredPoints int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	Season *Season `gorm:"foreignKey:SeasonId;constraint:OnDelete:CASCADE"`
	Rank   *Rank   `gorm:"foreignKey:RankId;constraint:OnDelete:CASCADE"`
}

type SeasonRankRepository struct {
	DB *gorm.DB
}

func NewSeasonRankRepository(db *gorm.DB) *SeasonRankRepository {
	return &SeasonRankRepository{DB: db}
}

func (r *SeasonRankRepository) GetSeasonRankById(seasonRankId int) (*SeasonRank, error) {
	var seasonRank SeasonRank
	result := r.DB.Preload("Season").Preload("Rank").First(&seasonRank, seasonRankId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &seasonRank, nil
}

func (r *SeasonRankRepository) GetSeasonRankByIds(seasonId int, rankId int) (*SeasonRank, error) {
	var seasonRank SeasonRank
	result := r.DB.Preload("Season").Preload("Rank").First(&seasonRank, SeasonRank{SeasonId: seasonId, RankId: rankId})
	if result.Error != nil {
		return nil, result.Error
	}
	return &seasonRank, nil
}

// GetRanksForSeason returns the season's ranks ordered from lowest to highest
// rank number.
func (r *SeasonRankRepository) GetRanksForSeason(seasonId int) ([]*SeasonRank, error) {
	var seasonRanks []*SeasonRank
	result := r.DB.Preload("Season").Preload("Rank").Order("number asc").Find(&seasonRanks, "season_id = ?", seasonId)
	if result.Error != nil {
		return nil, result.Error
	}
	return seasonRanks, nil
}

func (r *SeasonRankRepository) SaveSeasonRank(seasonRank *SeasonRank) (*SeasonRank, error) {
	result := r.DB.Save(seasonRank)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.GetSeasonRankById(seasonRank.Id)
}

func (r *SeasonRankRepository) DeleteSeasonRank(seasonRank *SeasonRank) error {
	return r.DB.Delete(seasonRank).Error
}
