package model

import "time"

// Account is a dashboard login.
type Account struct {
	Username  string    `gorm:"primaryKey;size:128" json:"username"`
	Password  string    `gorm:"size:256;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
