package service

import (
	"gatherpass/repository"

	"gorm.io/gorm"
)

type ItemService struct {
	itemRepository *repository.ItemRepository
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{
		itemRepository: repository.NewItemRepository(db),
	}
}

func (s *ItemService) GetItemById(itemId int) (*repository.Item, error) {
	return s.itemRepository.GetItemById(itemId)
}

func (s *ItemService) GetItems(nameQuery string) ([]*repository.Item, error) {
	return s.itemRepository.GetItems(nameQuery)
}

func (s *ItemService) CreateItem(item *repository.Item) (*repository.Item, error) {
	return s.itemRepository.SaveItem(item)
}

func (s *ItemService) UpdateItem(itemId int, updateItem *repository.Item) (*repository.Item, error) {
	item, err := s.itemRepository.GetItemById(itemId)
	if err != nil {
		return nil, err
	}
	if updateItem.Name != "" {
		item.Name = updateItem.Name
	}
	if updateItem.LodestoneId != "" {
		item.LodestoneId = updateItem.LodestoneId
	}
	return s.itemRepository.SaveItem(item)
}

func (s *ItemService) DeleteItem(itemId int) error {
	return s.itemRepository.DeleteItem(itemId)
}
