package domain

import "time"

type Tag struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	IsDeleted   bool       `json:"-"`
	DeletedAt   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CreatedBy   *string    `json:"created_by,omitempty" gorm:"size:36"`
	UpdatedBy   *string    `json:"updated_by,omitempty" gorm:"size:36"`
}
