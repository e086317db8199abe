package controller

import (
	"errors"
	"strconv"
	"time"

	"gatherpass/repository"
	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmissionController struct {
	submissionService *service.SubmissionService
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{
		submissionService: service.NewSubmissionService(db),
	}
}

func setupSubmissionController(db *gorm.DB) []RouteInfo {
	e := NewSubmissionController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/seasons/:season_id/submissions", HandlerFunc: e.getSubmissionsForSeasonHandler()},
		{Method: "GET", Path: "/submissions/:submission_id", HandlerFunc: e.getSubmissionByIdHandler()},
		{Method: "POST", Path: "/submissions", HandlerFunc: e.createSubmissionHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/submissions/:submission_id", HandlerFunc: e.updateSubmissionHandler(), Authenticated: true},
		{Method: "DELETE", Path: "/submissions/:submission_id", HandlerFunc: e.deleteSubmissionHandler(), Authenticated: true},
	}
	return routes
}

func submissionErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSeasonItemNotFound):
		return 404
	case errors.Is(err, service.ErrNotRegistered), errors.Is(err, service.ErrInvalidQuantity):
		return 422
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 404
	default:
		return 500
	}
}

// @id GetSubmissionsForSeason
// @Description Fetches the submissions of a season, optionally for one user
// @Tags submission
// @Produce json
// @Param season_id path int true "Season Id"
// @Param user_id query int false "User Id"
// @Success 200 {array} Submission
// @Router /seasons/{season_id}/submissions [get]
func (e *SubmissionController) getSubmissionsForSeasonHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		seasonId, err := strconv.Atoi(c.Param("season_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		userId := 0
		if userQuery := c.Query("user_id"); userQuery != "" {
			userId, err = strconv.Atoi(userQuery)
			if err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
		}
		submissions, err := e.submissionService.GetSubmissionsForSeason(seasonId, userId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(submissions, toSubmissionResponse))
	}
}

// @id GetSubmissionById
// @Description Fetches a submission by id
// @Tags submission
// @Produce json
// @Param submission_id path int true "Submission Id"
// @Success 200 {object} Submission
// @Router /submissions/{submission_id} [get]
func (e *SubmissionController) getSubmissionByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		submissionId, err := strconv.Atoi(c.Param("submission_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		submission, err := e.submissionService.GetSubmissionById(submissionId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Submission not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toSubmissionResponse(submission))
	}
}

// @id CreateSubmission
// @Description Records an item hand-in and credits the points to the user's season total
// @Tags submission
// @Accept json
// @Produce json
// @Param submission body SubmissionCreate true "Submission"
// @Success 201 {object} Submission
// @Security BearerAuth
// @Router /submissions [post]
func (e *SubmissionController) createSubmissionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var submissionCreate SubmissionCreate
		if err := c.BindJSON(&submissionCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		userId := submissionCreate.UserId
		if userId == 0 {
			user := getUser(c)
			if user == nil {
				c.JSON(400, gin.H{"error": "user_id is required"})
				return
			}
			userId = user.Id
		}
		if !canActFor(c, userId) {
			c.JSON(403, gin.H{"error": "Cannot submit for other users"})
			return
		}
		submission, err := e.submissionService.CreateSubmission(submissionCreate.SeasonItemId, userId, submissionCreate.Quantity, getActor(c))
		if err != nil {
			c.JSON(submissionErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toSubmissionResponse(submission))
	}
}

// @id UpdateSubmission
// @Description Changes a submission's quantity, adjusting the season total by the difference
// @Tags submission
// @Accept json
// @Produce json
// @Param submission_id path int true "Submission Id"
// @Param submission body SubmissionUpdate true "Submission"
// @Success 200 {object} Submission
// @Security BearerAuth
// @Router /submissions/{submission_id} [patch]
func (e *SubmissionController) updateSubmissionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		submissionId, err := strconv.Atoi(c.Param("submission_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var submissionUpdate SubmissionUpdate
		if err := c.BindJSON(&submissionUpdate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		submission, err := e.submissionService.GetSubmissionById(submissionId)
		if err != nil {
			c.JSON(submissionErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		if !canActFor(c, submission.UserId) {
			c.JSON(403, gin.H{"error": "Cannot edit other users' submissions"})
			return
		}
		submission, err = e.submissionService.UpdateSubmission(submissionId, submissionUpdate.Quantity, getActor(c))
		if err != nil {
			c.JSON(submissionErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toSubmissionResponse(submission))
	}
}

// @id DeleteSubmission
// @Description Deletes a submission and debits its points from the season total
// @Tags submission
// @Produce json
// @Param submission_id path int true "Submission Id"
// @Success 204
// @Security BearerAuth
// @Router /submissions/{submission_id} [delete]
func (e *SubmissionController) deleteSubmissionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		submissionId, err := strconv.Atoi(c.Param("submission_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		submission, err := e.submissionService.GetSubmissionById(submissionId)
		if err != nil {
			c.JSON(submissionErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		if !canActFor(c, submission.UserId) {
			c.JSON(403, gin.H{"error": "Cannot delete other users' submissions"})
			return
		}
		if err := e.submissionService.DeleteSubmission(submissionId, getActor(c)); err != nil {
			c.JSON(submissionErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(204, nil)
	}
}

type SubmissionCreate struct {
	SeasonItemId int `json:"season_item_id" binding:"required"`
	UserId       int `json:"user_id"`
	Quantity     int `json:"quantity" binding:"required"`
}

type SubmissionUpdate struct {
	Quantity int `json:"quantity" binding:"required"`
}

type Submission struct {
	Id              int         `json:"id" binding:"required"`
	UserId          int         `json:"user_id" binding:"required"`
	Quantity        int         `json:"quantity" binding:"required"`
	TotalPointValue int         `json:"total_point_value" binding:"required"`
	CreatedAt       time.Time   `json:"created_at" binding:"required"`
	SeasonItem      *SeasonItem `json:"season_item"`
}

func toSubmissionResponse(submission *repository.Submission) *Submission {
	response := &Submission{
		Id:              submission.Id,
		UserId:          submission.UserId,
		Quantity:        submission.Quantity,
		TotalPointValue: submission.TotalPointValue,
		CreatedAt:       submission.CreatedAt,
	}
	if submission.SeasonItem != nil {
		response.SeasonItem = toSeasonItemResponse(submission.SeasonItem)
	}
	return response
}
