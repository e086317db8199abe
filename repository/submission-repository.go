package repository

import (
	"time"

	"gorm.io/gorm"
)

type Submission struct {
	Id              int       `gorm:"primaryKey"`
	UserId          int       `gorm:"not null"`
	SeasonItemId    int       `gorm:"not null"`
	Quantity        int       `gorm:"not null;default:1"`
	TotalPointValue int       `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
	CreatedBy       string    `gorm:"not null"`
	UpdatedBy       string    `gorm:"not null"`

	User       *User       `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	SeasonItem *SeasonItem `gorm:"foreignKey:SeasonItemId;constraint:OnDelete:CASCADE"`
}

// UserItemTotal is one row of the per-item submission summary.
type UserItemTotal struct {
	ItemId        int    `json:"item_id"`
	ItemName      string `json:"item_name"`
	TotalQuantity int    `json:"total_quantity"`
}

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) GetSubmissionById(submissionId int) (*Submission, error) {
	var submission Submission
	result := r.DB.
		Preload("User").
		Preload("SeasonItem").Preload("SeasonItem.Item").Preload("SeasonItem.Season").
		First(&submission, submissionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &submission, nil
}

// GetSubmissionsForSeason returns all submissions referencing the season's
// items, newest first. userId filters to one user when non-zero.
func (r *SubmissionRepository) GetSubmissionsForSeason(seasonId int, userId int) ([]*Submission, error) {
	var submissions []*Submission
	query := r.DB.
		Preload("User").
		Preload("SeasonItem").Preload("SeasonItem.Item").Preload("SeasonItem.Season").
		Joins("JOIN gatherpass.season_items ON gatherpass.season_items.id = gatherpass.submissions.season_item_id").
		Where("gatherpass.season_items.season_id = ?", seasonId)
	if userId != 0 {
		query = query.Where("gatherpass.submissions.user_id = ?", userId)
	}
	result := query.Order("gatherpass.submissions.created_at desc").Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}
	return submissions, nil
}

// GetUserItemTotals sums submitted quantities per item for one user in one
// season.
func (r *SubmissionRepository) GetUserItemTotals(seasonId int, userId int) ([]*UserItemTotal, error) {
	var totals []*UserItemTotal
	query := `
		SELECT items.id AS item_id, items.name AS item_name, SUM(submissions.quantity) AS total_quantity
		FROM gatherpass.submissions AS submissions
		JOIN gatherpass.season_items AS season_items ON submissions.season_item_id = season_items.id
		JOIN gatherpass.items AS items ON season_items.item_id = items.id
		WHERE submissions.user_id = ? AND season_items.season_id = ?
		GROUP BY items.id, items.name
		ORDER BY items.name ASC
	`
	result := r.DB.Raw(query, userId, seasonId).Scan(&totals)
	if result.Error != nil {
		return nil, result.Error
	}
	return totals, nil
}

func (r *SubmissionRepository) SaveSubmission(submission *Submission) (*Submission, error) {
	result := r.DB.Save(submission)
	if result.Error != nil {
		return nil, result.Error
	}
	return submission, nil
}

func (r *SubmissionRepository) DeleteSubmission(submissionId int) error {
	return r.DB.Delete(&Submission{Id: submissionId}).Error
}
