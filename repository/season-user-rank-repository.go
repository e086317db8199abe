package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeasonUserRank struct {
	Id           int       `gorm:"primaryKey"`
	UserId       int       `gorm:"not null;uniqueIndex:idx_user_season_rank"`
	SeasonRankId int       `gorm:"not null;uniqueIndex:idx_user_season_rank"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	User       *User       `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	SeasonRank *SeasonRank `gorm:"foreignKey:SeasonRankId;constraint:OnDelete:CASCADE"`
}

type SeasonUserRankRepository struct {
	DB *gorm.DB
}

func NewSeasonUserRankRepository(db *gorm.DB) *SeasonUserRankRepository {
	return &SeasonUserRankRepository{DB: db}
}

// GetUserRanksForSeason returns all ranks a user has been awarded in a season,
// lowest rank number first.
func (r *SeasonUserRankRepository) GetUserRanksForSeason(seasonId int, userId int) ([]*SeasonUserRank, error) {
	var awards []*SeasonUserRank
	result := r.DB.
		Preload("User").
		Preload("SeasonRank").Preload("SeasonRank.Rank").Preload("SeasonRank.Season").
		Joins("JOIN gatherpass.season_ranks ON gatherpass.season_ranks.id = gatherpass.season_user_ranks.season_rank_id").
		Where("gatherpass.season_user_ranks.user_id = ? AND gatherpass.season_ranks.season_id = ?", userId, seasonId).
		Order("gatherpass.season_ranks.number asc").
		Find(&awards)
	if result.Error != nil {
		return nil, result.Error
	}
	return awards, nil
}

// GetAwardsForSeason returns every rank award across all users of a season.
func (r *SeasonUserRankRepository) GetAwardsForSeason(seasonId int) ([]*SeasonUserRank, error) {
	var awards []*SeasonUserRank
	result := r.DB.
		Preload("SeasonRank").Preload("SeasonRank.Rank").
		Joins("JOIN gatherpass.season_ranks ON gatherpass.season_ranks.id = gatherpass.season_user_ranks.season_rank_id").
		Where("gatherpass.season_ranks.season_id = ?", seasonId).
		Find(&awards)
	if result.Error != nil {
		return nil, result.Error
	}
	return awards, nil
}

func (r *SeasonUserRankRepository) SaveAwards(awards []*SeasonUserRank) error {
	if len(awards) == 0 {
		return nil
	}
	return r.DB.Omit(clause.Associations).Create(awards).Error
}
