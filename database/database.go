package database

import (
	"gorm.io/gorm"

	"github.com/devshowcase/backend/models"
)

type Database struct {
	userRepo    *UserRepo
	projectRepo *ProjectRepo
	voteRepo    *VoteRepo
	commentRepo *CommentRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:    NewUserRepo(db),
		projectRepo: NewProjectRepo(db),
		voteRepo:    NewVoteRepo(db),
		commentRepo: NewCommentRepo(db),
	}
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Vote{},
		&models.Comment{},
	)
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) VoteRepo() *VoteRepo {
	return d.voteRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}
