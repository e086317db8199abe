package repository

import (
	"time"

	"gorm.io/gorm"
)

type Rank struct {
	Id        int       `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	BadgeUrl  string    `gorm:"null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type RankRepository struct {
	DB *gorm.DB
}

func NewRankRepository(db *gorm.DB) *RankRepository {
	return &RankRepository{DB: db}
}

func (r *RankRepository) GetRankById(rankId int) (*Rank, error) {
	var rank Rank
	result := r.DB.First(&rank, rankId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &rank, nil
}

func (r *RankRepository) GetRanks() ([]*Rank, error) {
	var ranks []*Rank
	result := r.DB.Order("id asc").Find(&ranks)
	if result.Error != nil {
		return nil, result.Error
	}
	return ranks, nil
}

func (r *RankRepository) SaveRank(rank *Rank) (*Rank, error) {
	result := r.DB.Save(rank)
	if result.Error != nil {
		return nil, result.Error
	}
	return rank, nil
}

func (r *RankRepository) DeleteRank(rankId int) error {
	return r.DB.Delete(&Rank{Id: rankId}).Error
}
