package repository

import (
	"gorm.io/gorm"
)

type SeasonPrize struct {
	Id           int `gorm:"primaryKey"`
	PrizeId      int `gorm:"not null"`
	SeasonRankId int `gorm:"not null"`

	Prize      *Prize      `gorm:"foreignKey:PrizeId;constraint:OnDelete:CASCADE"`
	SeasonRank *SeasonRank `gorm:"foreignKey:SeasonRankId;constraint:OnDelete:CASCADE"`
}

type SeasonPrizeRepository struct {
	DB *gorm.DB
}

func NewSeasonPrizeRepository(db *gorm.DB) *SeasonPrizeRepository {
	return &SeasonPrizeRepository{DB: db}
}

func (r *SeasonPrizeRepository) GetSeasonPrizeById(seasonPrizeId int) (*SeasonPrize, error) {
	var seasonPrize SeasonPrize
	result := r.DB.Preload("Prize").Preload("SeasonRank").Preload("SeasonRank.Rank").First(&seasonPrize, seasonPrizeId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &seasonPrize, nil
}

func (r *SeasonPrizeRepository) GetPrizesForSeasonRank(seasonRankId int) ([]*SeasonPrize, error) {
	var seasonPrizes []*SeasonPrize
	result := r.DB.Preload("Prize").Preload("SeasonRank").Find(&seasonPrizes, "season_rank_id = ?", seasonRankId)
	if result.Error != nil {
		return nil, result.Error
	}
	return seasonPrizes, nil
}

// GetPrizesForSeason returns every prize association across all of the
// season's ranks.
func (r *SeasonPrizeRepository) GetPrizesForSeason(seasonId int) ([]*SeasonPrize, error) {
	var seasonPrizes []*SeasonPrize
	result := r.DB.
		Preload("Prize").Preload("SeasonRank").
		Joins("JOIN gatherpass.season_ranks ON gatherpass.season_ranks.id = gatherpass.season_prizes.season_rank_id").
		Where("gatherpass.season_ranks.season_id = ?", seasonId).
		Find(&seasonPrizes)
	if result.Error != nil {
		return nil, result.Error
	}
	return seasonPrizes, nil
}

func (r *SeasonPrizeRepository) SaveSeasonPrize(seasonPrize *SeasonPrize) (*SeasonPrize, error) {
	result := r.DB.Save(seasonPrize)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.GetSeasonPrizeById(seasonPrize.Id)
}

func (r *SeasonPrizeRepository) DeleteSeasonPrize(seasonPrize *SeasonPrize) error {
	return r.DB.Delete(seasonPrize).Error
}
