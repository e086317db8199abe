package repository

import (
	"time"

	"gorm.io/gorm"
)

type Prize struct {
	Id          int       `gorm:"primaryKey"`
	Description string    `gorm:"not null"`
	Value       int       `gorm:"null"`
	LodestoneId string    `gorm:"null"`
	DiscordRole int64     `gorm:"null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type PrizeRepository struct {
	DB *gorm.DB
}

func NewPrizeRepository(db *gorm.DB) *PrizeRepository {
	return &PrizeRepository{DB: db}
}

func (r *PrizeRepository) GetPrizeById(prizeId int) (*Prize, error) {
	var prize Prize
	result := r.DB.First(&prize, prizeId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &prize, nil
}

func (r *PrizeRepository) GetPrizes() ([]*Prize, error) {
	var prizes []*Prize
	result := r.DB.Order("id asc").Find(&prizes)
	if result.Error != nil {
		return nil, result.Error
	}
	return prizes, nil
}

func (r *PrizeRepository) SavePrize(prize *Prize) (*Prize, error) {
	result := r.DB.Save(prize)
	if result.Error != nil {
		return nil, result.Error
	}
	return prize, nil
}

func (r *PrizeRepository) DeletePrize(prizeId int) error {
	return r.DB.Delete(&Prize{Id: prizeId}).Error
}
