package service

import (
	"gatherpass/repository"

	"gorm.io/gorm"
)

type SeasonItemService struct {
	seasonItemRepository *repository.SeasonItemRepository
}

func NewSeasonItemService(db *gorm.DB) *SeasonItemService {
	return &SeasonItemService{
		seasonItemRepository: repository.NewSeasonItemRepository(db),
	}
}

func (s *SeasonItemService) GetSeasonItemById(seasonItemId int) (*repository.SeasonItem, error) {
	return s.seasonItemRepository.GetSeasonItemById(seasonItemId)
}

func (s *SeasonItemService) GetItemsForSeason(seasonId int) ([]*repository.SeasonItem, error) {
	return s.seasonItemRepository.GetItemsForSeason(seasonId)
}

func (s *SeasonItemService) AddItemToSeason(seasonId int, itemId int, pointValue int) (*repository.SeasonItem, error) {
	seasonItem := &repository.SeasonItem{
		SeasonId:   seasonId,
		ItemId:     itemId,
		PointValue: pointValue,
	}
	saved, err := s.seasonItemRepository.SaveSeasonItem(seasonItem)
	if err != nil {
		return nil, err
	}
	return s.seasonItemRepository.GetSeasonItemById(saved.Id)
}

// UpdatePointValue changes what future submissions of the item are worth;
// existing submissions keep the total they were created with.
func (s *SeasonItemService) UpdatePointValue(seasonItemId int, pointValue int) (*repository.SeasonItem, error) {
	seasonItem, err := s.seasonItemRepository.GetSeasonItemById(seasonItemId)
	if err != nil {
		return nil, err
	}
	seasonItem.PointValue = pointValue
	if _, err := s.seasonItemRepository.SaveSeasonItem(seasonItem); err != nil {
		return nil, err
	}
	return s.seasonItemRepository.GetSeasonItemById(seasonItemId)
}

func (s *SeasonItemService) RemoveItemFromSeason(seasonItemId int) error {
	seasonItem, err := s.seasonItemRepository.GetSeasonItemById(seasonItemId)
	if err != nil {
		return err
	}
	return s.seasonItemRepository.DeleteSeasonItem(seasonItem)
}
