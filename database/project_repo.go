package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/devshowcase/backend/errs"
	"github.com/devshowcase/backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// Both one-to-many joins are fanned out at once, so both counts must be
// distinct or a project with m votes and n comments would report m*n of each.
const annotatedSelect = `
SELECT p.*,
       COUNT(DISTINCT v.user_id) AS likes,
       COUNT(DISTINCT c.id)      AS comments_count,
       %s                        AS liked
FROM projects p
LEFT JOIN votes v    ON v.project_id = p.id
LEFT JOIN comments c ON c.project_id = p.id
`

const likedForViewer = `EXISTS (SELECT 1 FROM votes lv WHERE lv.project_id = p.id AND lv.user_id = ?)`

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID returns a project row without aggregates, or errs.ErrNotFound.
func (r *ProjectRepo) FindByID(id int64) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindAllAnnotated returns every project, newest first, annotated with
// like/comment counts and the viewer's liked-state.
func (r *ProjectRepo) FindAllAnnotated(viewer models.Viewer) ([]models.ProjectWithStats, error) {
	query, args := annotatedQuery(viewer, "", nil)
	query += " GROUP BY p.id ORDER BY p.created_at DESC"

	projects := []models.ProjectWithStats{}
	err := r.db.Raw(query, args...).Scan(&projects).Error
	return projects, err
}

// FindOwnedAnnotated returns the owner's projects, newest first, with the
// owner as the viewer for liked-state.
func (r *ProjectRepo) FindOwnedAnnotated(owner string) ([]models.ProjectWithStats, error) {
	query, args := annotatedQuery(models.Authenticated(owner), "WHERE p.user_id = ?", []any{owner})
	query += " GROUP BY p.id ORDER BY p.created_at DESC"

	projects := []models.ProjectWithStats{}
	err := r.db.Raw(query, args...).Scan(&projects).Error
	return projects, err
}

// FindByIDAnnotated returns one annotated project, or errs.ErrNotFound.
func (r *ProjectRepo) FindByIDAnnotated(id int64, viewer models.Viewer) (*models.ProjectWithStats, error) {
	query, args := annotatedQuery(viewer, "WHERE p.id = ?", []any{id})
	query += " GROUP BY p.id"

	var projects []models.ProjectWithStats
	if err := r.db.Raw(query, args...).Scan(&projects).Error; err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, errs.ErrNotFound
	}
	return &projects[0], nil
}

// annotatedQuery assembles the aggregated select for the given viewer and an
// optional WHERE clause, returning the SQL and its ordered arguments.
func annotatedQuery(viewer models.Viewer, where string, whereArgs []any) (string, []any) {
	likedExpr := "FALSE"
	var args []any
	if viewerID, ok := viewer.UserID(); ok {
		likedExpr = likedForViewer
		args = append(args, viewerID)
	}

	query := fmt.Sprintf(annotatedSelect, likedExpr)
	if where != "" {
		query += where
		args = append(args, whereArgs...)
	}
	return query, args
}

// UpdateOwned replaces the editable columns of the project, scoped by id and
// owner. Zero affected rows means the row is missing or belongs to someone
// else; both come back as errs.ErrForbidden.
func (r *ProjectRepo) UpdateOwned(project *models.Project) (*models.Project, error) {
	result := r.db.Model(&models.Project{}).
		Where("id = ? AND user_id = ?", project.ID, project.UserID).
		Select("title", "short_desc", "full_desc", "image", "github", "live", "tags").
		Updates(models.Project{
			Title:     project.Title,
			ShortDesc: project.ShortDesc,
			FullDesc:  project.FullDesc,
			Image:     project.Image,
			Github:    project.Github,
			Live:      project.Live,
			Tags:      project.Tags,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.ErrForbidden
	}
	return r.FindByID(project.ID)
}

// DeleteOwned removes the project and its dependent votes and comments in one
// transaction. The project delete itself is scoped by owner; if it affects
// zero rows the whole transaction rolls back and errs.ErrForbidden is
// returned, leaving the dependents untouched.
func (r *ProjectRepo) DeleteOwned(id int64, owner string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, owner).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.ErrForbidden
		}
		return nil
	})
}
