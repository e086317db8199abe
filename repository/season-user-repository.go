package repository

import (
	"time"

	"gorm.io/gorm"
)

type SeasonUser struct {
	Id          int       `gorm:"primaryKey"`
	UserId      int       `gorm:"not null;uniqueIndex:idx_user_season"`
	SeasonId    int       `gorm:"not null;uniqueIndex:idx_user_season"`
	TotalPoints int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	CreatedBy   string    `gorm:"not null"`
	UpdatedBy   string    `gorm:"not null"`

	User   *User   `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	Season *Season `gorm:"foreignKey:SeasonId;constraint:OnDelete:CASCADE"`
}

type SeasonUserRepository struct {
	DB *gorm.DB
}

func NewSeasonUserRepository(db *gorm.DB) *SeasonUserRepository {
	return &SeasonUserRepository{DB: db}
}

func (r *SeasonUserRepository) GetSeasonUser(seasonId int, userId int) (*SeasonUser, error) {
	var seasonUser SeasonUser
	result := r.DB.Preload("User").Preload("Season").First(&seasonUser, SeasonUser{SeasonId: seasonId, UserId: userId})
	if result.Error != nil {
		return nil, result.Error
	}
	return &seasonUser, nil
}

// GetLeaderboard returns all participants of a season ordered by total points.
func (r *SeasonUserRepository) GetLeaderboard(seasonId int) ([]*SeasonUser, error) {
	var seasonUsers []*SeasonUser
	result := r.DB.Preload("User").Preload("Season").Order("total_points desc").Find(&seasonUsers, "season_id = ?", seasonId)
	if result.Error != nil {
		return nil, result.Error
	}
	return seasonUsers, nil
}

func (r *SeasonUserRepository) SaveSeasonUser(seasonUser *SeasonUser) (*SeasonUser, error) {
	result := r.DB.Save(seasonUser)
	if result.Error != nil {
		return nil, result.Error
	}
	return seasonUser, nil
}

// AdjustTotalPoints applies a point delta as a single UPDATE so that the
// arithmetic happens inside the database. Concurrent writers to the same
// participant row therefore cannot lose updates.
func (r *SeasonUserRepository) AdjustTotalPoints(seasonUserId int, delta int, updatedBy string) error {
	result := r.DB.Model(&SeasonUser{}).Where("id = ?", seasonUserId).Updates(map[string]interface{}{
		"total_points": gorm.Expr("total_points + ?", delta),
		"updated_by":   updatedBy,
	})
	return result.Error
}
