package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devshowcase/backend/models"
)

type VoteRepo struct {
	db *gorm.DB
}

func NewVoteRepo(db *gorm.DB) *VoteRepo {
	return &VoteRepo{db}
}

// Like records a vote for (userID, projectID). A duplicate like conflicts on
// the composite key and is ignored, so the call is idempotent.
func (r *VoteRepo) Like(userID string, projectID int64) error {
	vote := models.Vote{UserID: userID, ProjectID: projectID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote).Error
}

// Unlike removes the vote if present; removing an absent vote is a no-op.
func (r *VoteRepo) Unlike(userID string, projectID int64) error {
	return r.db.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&models.Vote{}).Error
}

// StatsFor computes the like count for a project and, for an authenticated
// viewer, whether that viewer has liked it.
func (r *VoteRepo) StatsFor(projectID int64, viewer models.Viewer) (models.ProjectStats, error) {
	var stats models.ProjectStats

	err := r.db.Model(&models.Vote{}).
		Where("project_id = ?", projectID).
		Count(&stats.Likes).Error
	if err != nil {
		return models.ProjectStats{}, err
	}

	viewerID, ok := viewer.UserID()
	if !ok {
		return stats, nil
	}

	var liked int64
	err = r.db.Model(&models.Vote{}).
		Where("project_id = ? AND user_id = ?", projectID, viewerID).
		Count(&liked).Error
	if err != nil {
		return models.ProjectStats{}, err
	}
	stats.Liked = liked > 0

	return stats, nil
}
