package repository

import (
	"time"

	"gorm.io/gorm"
)

type SeasonItem struct {
	Id         int       `gorm:"primaryKey"`
	SeasonId   int       `gorm:"not null;uniqueIndex:idx_season_item"`
	ItemId     int       `gorm:"not null;uniqueIndex:idx_season_item"`
	PointValue int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Season *Season `gorm:"foreignKey:SeasonId;constraint:OnDelete:CASCADE"`
	Item   *Item   `gorm:"foreignKey:ItemId;constraint:OnDelete:CASCADE"`
}

type SeasonItemRepository struct {
	DB *gorm.DB
}

func NewSeasonItemRepository(db *gorm.DB) *SeasonItemRepository {
	return &SeasonItemRepository{DB: db}
}

func (r *SeasonItemRepository) GetSeasonItemById(seasonItemId int) (*SeasonItem, error) {
	var seasonItem SeasonItem
	result := r.DB.Preload("Season").Preload("Item").First(&seasonItem, seasonItemId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &seasonItem, nil
}

func (r *SeasonItemRepository) GetSeasonItemByIds(seasonId int, itemId int) (*SeasonItem, error) {
	var seasonItem SeasonItem
	result := r.DB.Preload("Season").Preload("Item").First(&seasonItem, SeasonItem{SeasonId: seasonId, ItemId: itemId})
	if result.Error != nil {
		return nil, result.Error
	}
	return &seasonItem, nil
}

func (r *SeasonItemRepository) GetItemsForSeason(seasonId int) ([]*SeasonItem, error) {
	var seasonItems []*SeasonItem
	result := r.DB.Preload("Season").Preload("Item").Find(&seasonItems, "season_id = ?", seasonId)
	if result.Error != nil {
		return nil, result.Error
	}
	return seasonItems, nil
}

func (r *SeasonItemRepository) SaveSeasonItem(seasonItem *SeasonItem) (*SeasonItem, error) {
	result := r.DB.Save(seasonItem)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.GetSeasonItemById(seasonItem.Id)
}

func (r *SeasonItemRepository) DeleteSeasonItem(seasonItem *SeasonItem) error {
	return r.DB.Delete(seasonItem).Error
}
