package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project represents a showcased project with metadata
type Project struct {
	ID        int64                       `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title     string                      `json:"title" db:"title" gorm:"type:text;not null"`
	ShortDesc string                      `json:"short_desc" db:"short_desc" gorm:"type:text"`
	FullDesc  string                      `json:"full_desc" db:"full_desc" gorm:"type:text"`
	Image     string                      `json:"image" db:"image" gorm:"type:text"`
	Github    string                      `json:"github" db:"github" gorm:"type:text"`
	Live      string                      `json:"live" db:"live" gorm:"type:text"`
	Tags      datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	UserID    string                      `json:"user_id" db:"user_id" gorm:"type:text;not null;index"`
	CreatedAt time.Time                   `json:"created_at" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// ProjectStats is the like-count and viewer-specific liked-state for a project.
type ProjectStats struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}

// ProjectWithStats is a project row annotated with aggregated counts, as
// produced by the list and fetch queries in a single round trip.
type ProjectWithStats struct {
	Project       `gorm:"embedded"`
	Likes         int64 `json:"likes" gorm:"column:likes"`
	CommentsCount int64 `json:"comments_count" gorm:"column:comments_count"`
	Liked         bool  `json:"liked" gorm:"column:liked"`
}
