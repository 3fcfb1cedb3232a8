package models

import "time"

// Vote records that a user likes a project. The composite key makes a
// duplicate like a conflict, which the repository ignores.
type Vote struct {
	UserID    string    `json:"user_id" db:"user_id" gorm:"type:text;primaryKey"`
	ProjectID int64     `json:"project_id" db:"project_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Project Project `json:"-" gorm:"foreignKey:ProjectID;references:ID"`
}
