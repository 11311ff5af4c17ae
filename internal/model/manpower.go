package model

import "time"

// Manpower is an operator's master record, keyed by employee number (NIK).
type Manpower struct {
	NIK        string    `gorm:"primaryKey;size:64" json:"nik"`
	Name       string    `gorm:"size:256;not null" json:"name"`
	Department string    `gorm:"size:128" json:"department"`
	Position   string    `gorm:"size:128" json:"position"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// ManpowerLog records a badge login/logout event for an operator.
type ManpowerLog struct {
	ID        int64     `gorm:"autoIncrement;primaryKey" json:"id"`
	NIK       string    `gorm:"size:64;index;not null" json:"nik"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Status    string    `gorm:"size:16;not null" json:"status"` // login | logout
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
