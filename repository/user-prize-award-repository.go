package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserPrizeAward struct {
	Id            int        `gorm:"primaryKey"`
	UserId        int        `gorm:"not null"`
	SeasonPrizeId int        `gorm:"not null"`
	Delivered     bool       `gorm:"not null;default:false"`
	AwardedAt     time.Time  `gorm:"autoCreateTime"`
	DeliveredAt   *time.Time `gorm:"null"`
	DeliveredBy   *string    `gorm:"null"`
	Notes         *string    `gorm:"null"`

	User        *User        `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	SeasonPrize *SeasonPrize `gorm:"foreignKey:SeasonPrizeId;constraint:OnDelete:CASCADE"`
}

type UserPrizeAwardRepository struct {
	DB *gorm.DB
}

func NewUserPrizeAwardRepository(db *gorm.DB) *UserPrizeAwardRepository {
	return &UserPrizeAwardRepository{DB: db}
}

func (r *UserPrizeAwardRepository) GetAwardById(awardId int) (*UserPrizeAward, error) {
	var award UserPrizeAward
	result := r.DB.
		Preload("User").
		Preload("SeasonPrize").Preload("SeasonPrize.Prize").Preload("SeasonPrize.SeasonRank").
		First(&award, awardId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &award, nil
}

// GetAwardsForUser returns a user's prize awards. seasonId filters to one
// season when non-zero.
func (r *UserPrizeAwardRepository) GetAwardsForUser(userId int, seasonId int) ([]*UserPrizeAward, error) {
	var awards []*UserPrizeAward
	query := r.DB.
		Preload("SeasonPrize").Preload("SeasonPrize.Prize").Preload("SeasonPrize.SeasonRank").
		Where("gatherpass.user_prize_awards.user_id = ?", userId)
	if seasonId != 0 {
		query = query.
			Joins("JOIN gatherpass.season_prizes ON gatherpass.season_prizes.id = gatherpass.user_prize_awards.season_prize_id").
			Joins("JOIN gatherpass.season_ranks ON gatherpass.season_ranks.id = gatherpass.season_prizes.season_rank_id").
			Where("gatherpass.season_ranks.season_id = ?", seasonId)
	}
	result := query.Find(&awards)
	if result.Error != nil {
		return nil, result.Error
	}
	return awards, nil
}

func (r *UserPrizeAwardRepository) SaveAward(award *UserPrizeAward) (*UserPrizeAward, error) {
	result := r.DB.Save(award)
	if result.Error != nil {
		return nil, result.Error
	}
	return award, nil
}

func (r *UserPrizeAwardRepository) SaveAwards(awards []*UserPrizeAward) error {
	if len(awards) == 0 {
		return nil
	}
	return r.DB.Omit(clause.Associations).Create(awards).Error
}
