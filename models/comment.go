package models

import "time"

// Comment is a user's comment on a project, deletable only by its author.
type Comment struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID int64     `json:"project_id" db:"project_id" gorm:"not null;index"`
	UserID    string    `json:"user_id" db:"user_id" gorm:"type:text;not null"`
	Text      string    `json:"text" db:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Project Project `json:"-" gorm:"foreignKey:ProjectID;references:ID"`
}

// CommentWithAuthor is a comment row joined with the author's display name.
// UserName is nil when the author's user record is missing.
type CommentWithAuthor struct {
	Comment  `gorm:"embedded"`
	UserName *string `json:"user_name" gorm:"column:user_name"`
}
