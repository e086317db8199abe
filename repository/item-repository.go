package repository

import (
	"time"

	"gorm.io/gorm"
)

type Item struct {
	Id          int       `gorm:"primaryKey"`
	LodestoneId string    `gorm:"uniqueIndex"`
	Name        string    `gorm:"null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type ItemRepository struct {
	DB *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{DB: db}
}

func (r *ItemRepository) GetItemById(itemId int) (*Item, error) {
	var item Item
	result := r.DB.First(&item, itemId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

func (r *ItemRepository) GetItems(nameQuery string) ([]*Item, error) {
	var items []*Item
	query := r.DB
	if nameQuery != "" {
		query = query.Where("name ILIKE ?", "%"+nameQuery+"%")
	}
	result := query.Order("name asc").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *ItemRepository) SaveItem(item *Item) (*Item, error) {
	result := r.DB.Save(item)
	if result.Error != nil {
		return nil, result.Error
	}
	return item, nil
}

func (r *ItemRepository) DeleteItem(itemId int) error {
	return r.DB.Delete(&Item{Id: itemId}).Error
}
