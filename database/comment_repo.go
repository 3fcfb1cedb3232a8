package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devshowcase/backend/errs"
	"github.com/devshowcase/backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindForProject returns a project's comments oldest first, each joined with
// the author's display name. The join is a left join: a comment whose author
// record is gone still comes back, with a nil user_name.
func (r *CommentRepo) FindForProject(projectID int64) ([]models.CommentWithAuthor, error) {
	comments := []models.CommentWithAuthor{}
	err := r.db.Raw(`
SELECT c.*, u.name AS user_name
FROM comments c
LEFT JOIN users u ON u.id = c.user_id
WHERE c.project_id = ?
ORDER BY c.created_at ASC`, projectID).Scan(&comments).Error
	return comments, err
}

// DeleteOwned removes a comment only if the caller authored it. The ownership
// check runs as its own query before the delete; a miss (absent comment or
// someone else's) is errs.ErrForbidden.
func (r *CommentRepo) DeleteOwned(id int64, userID string) error {
	var comment models.Comment
	err := r.db.First(&comment, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrForbidden
	}
	if err != nil {
		return err
	}

	return r.db.Delete(&models.Comment{}, id).Error
}
