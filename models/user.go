package models

import "time"

// User is a local profile record keyed by the identity provider's user id.
// The id is opaque to us; we never generate one ourselves.
type User struct {
	ID        string    `json:"id" db:"id" gorm:"type:text;primaryKey"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Username  *string   `json:"username" db:"username" gorm:"type:text"`
	Bio       *string   `json:"bio" db:"bio" gorm:"type:text"`
	Github    *string   `json:"github" db:"github" gorm:"type:text"`
	Linkedin  *string   `json:"linkedin" db:"linkedin" gorm:"type:text"`
	Website   *string   `json:"website" db:"website" gorm:"type:text"`
	Avatar    *string   `json:"avatar" db:"avatar" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Profile carries the user-editable columns of a User. An update overwrites
// all of them; a nil field becomes NULL.
type Profile struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Github   *string `json:"github"`
	Linkedin *string `json:"linkedin"`
	Website  *string `json:"website"`
	Avatar   *string `json:"avatar"`
}
