package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devshowcase/backend/errs"
	"github.com/devshowcase/backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// Upsert inserts the user if the id is new; a conflicting id is a no-op.
// Either way the stored row is returned.
func (r *UserRepo) Upsert(user *models.User) (*models.User, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(user.ID)
}

// FindByID returns a user by id, or errs.ErrNotFound if absent.
func (r *UserRepo) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns all users, newest first.
func (r *UserRepo) FindAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// UpdateProfile overwrites every profile column for the user, then returns
// the updated row. Nil fields become NULL.
func (r *UserRepo) UpdateProfile(id string, profile models.Profile) (*models.User, error) {
	err := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Select("username", "bio", "github", "linkedin", "website", "avatar").
		Updates(models.User{
			Username: profile.Username,
			Bio:      profile.Bio,
			Github:   profile.Github,
			Linkedin: profile.Linkedin,
			Website:  profile.Website,
			Avatar:   profile.Avatar,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

// Delete removes a user by id. Deleting an absent user is not an error.
func (r *UserRepo) Delete(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}
