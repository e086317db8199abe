package service

import (
	"errors"

	"gatherpass/auth"
	"gatherpass/metrics"
	"gatherpass/repository"

	"gorm.io/gorm"
)

// SubmissionService is the write side of the season progress ledger: every
// mutation keeps the owning participant's total_points consistent with the
// sum of their submissions, inside one transaction.
type SubmissionService struct {
	db                   *gorm.DB
	submissionRepository *repository.SubmissionRepository
	seasonItemRepository *repository.SeasonItemRepository
	seasonUserRepository *repository.SeasonUserRepository
	pointFeedService     *PointFeedService
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{
		db:                   db,
		submissionRepository: repository.NewSubmissionRepository(db),
		seasonItemRepository: repository.NewSeasonItemRepository(db),
		seasonUserRepository: repository.NewSeasonUserRepository(db),
		pointFeedService:     NewPointFeedService(),
	}
}

func (s *SubmissionService) GetSubmissionById(submissionId int) (*repository.Submission, error) {
	return s.submissionRepository.GetSubmissionById(submissionId)
}

func (s *SubmissionService) GetSubmissionsForSeason(seasonId int, userId int) ([]*repository.Submission, error) {
	return s.submissionRepository.GetSubmissionsForSeason(seasonId, userId)
}

func (s *SubmissionService) CreateSubmission(seasonItemId int, userId int, quantity int, actor auth.Actor) (*repository.Submission, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	seasonItem, err := s.seasonItemRepository.GetSeasonItemById(seasonItemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonItemNotFound
		}
		return nil, err
	}
	seasonUser, err := s.seasonUserRepository.GetSeasonUser(seasonItem.SeasonId, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}

	totalPointValue := seasonItem.PointValue * quantity
	submission := &repository.Submission{
		UserId:          userId,
		SeasonItemId:    seasonItemId,
		Quantity:        quantity,
		TotalPointValue: totalPointValue,
		CreatedBy:       actor.AuditRef(),
		UpdatedBy:       actor.AuditRef(),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}
		return repository.NewSeasonUserRepository(tx).AdjustTotalPoints(seasonUser.Id, totalPointValue, actor.AuditRef())
	})
	if err != nil {
		return nil, err
	}

	metrics.SubmissionCounter.WithLabelValues("create").Inc()
	metrics.PointsGrantedCounter.Add(float64(totalPointValue))
	s.pointFeedService.Publish(&PointEvent{
		Type:         PointEventSubmissionCreated,
		SeasonId:     seasonItem.SeasonId,
		UserId:       userId,
		Actor:        actor.AuditRef(),
		Points:       totalPointValue,
		SubmissionId: submission.Id,
	})
	return s.submissionRepository.GetSubmissionById(submission.Id)
}

// UpdateSubmission changes a submission's quantity and applies the point
// difference to the participant total as a single atomic adjustment.
func (s *SubmissionService) UpdateSubmission(submissionId int, quantity int, actor auth.Actor) (*repository.Submission, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	submission, err := s.submissionRepository.GetSubmissionById(submissionId)
	if err != nil {
		return nil, err
	}
	newTotal := submission.SeasonItem.PointValue * quantity
	delta := newTotal - submission.TotalPointValue

	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&repository.Submission{}).Where("id = ?", submissionId).Updates(map[string]interface{}{
			"quantity":          quantity,
			"total_point_value": newTotal,
			"updated_by":        actor.AuditRef(),
		})
		if result.Error != nil {
			return result.Error
		}
		seasonUser, err := repository.NewSeasonUserRepository(tx).GetSeasonUser(submission.SeasonItem.SeasonId, submission.UserId)
		if err != nil {
			// a participant row that disappeared is not a reason to keep the
			// submission stale
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return repository.NewSeasonUserRepository(tx).AdjustTotalPoints(seasonUser.Id, delta, actor.AuditRef())
	})
	if err != nil {
		return nil, err
	}

	metrics.SubmissionCounter.WithLabelValues("update").Inc()
	metrics.PointsGrantedCounter.Add(float64(delta))
	s.pointFeedService.Publish(&PointEvent{
		Type:         PointEventSubmissionUpdated,
		SeasonId:     submission.SeasonItem.SeasonId,
		UserId:       submission.UserId,
		Actor:        actor.AuditRef(),
		Points:       delta,
		SubmissionId: submission.Id,
	})
	return s.submissionRepository.GetSubmissionById(submissionId)
}

func (s *SubmissionService) DeleteSubmission(submissionId int, actor auth.Actor) error {
	submission, err := s.submissionRepository.GetSubmissionById(submissionId)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		seasonUser, err := repository.NewSeasonUserRepository(tx).GetSeasonUser(submission.SeasonItem.SeasonId, submission.UserId)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if seasonUser != nil {
			if err := repository.NewSeasonUserRepository(tx).AdjustTotalPoints(seasonUser.Id, -submission.TotalPointValue, actor.AuditRef()); err != nil {
				return err
			}
		}
		return repository.NewSubmissionRepository(tx).DeleteSubmission(submissionId)
	})
	if err != nil {
		return err
	}

	metrics.SubmissionCounter.WithLabelValues("delete").Inc()
	metrics.PointsGrantedCounter.Add(float64(-submission.TotalPointValue))
	s.pointFeedService.Publish(&PointEvent{
		Type:         PointEventSubmissionDeleted,
		SeasonId:     submission.SeasonItem.SeasonId,
		UserId:       submission.UserId,
		Actor:        actor.AuditRef(),
		Points:       -submission.TotalPointValue,
		SubmissionId: submission.Id,
	})
	return nil
}

func (s *SubmissionService) GetUserItemTotals(seasonId int, userId int) ([]*repository.UserItemTotal, error) {
	return s.submissionRepository.GetUserItemTotals(seasonId, userId)
}
