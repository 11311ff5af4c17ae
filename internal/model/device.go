package model

import "time"

// Device is a registered floor machine. The machine name doubles as the
// MQTT topic prefix the gateway publishes under, so it is the natural key.
type Device struct {
	MachineName  string    `gorm:"primaryKey;size:128" json:"machine_name"`
	SerialNumber string    `gorm:"size:128;not null" json:"serial_number"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
