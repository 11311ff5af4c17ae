package model

import "time"

// TagMachineStatus is the telemetry tag carrying the machine's run state
// code. All other tags (power meter, temperature) are stored but opaque.
const TagMachineStatus = "Machine_Status"

// MachineLog is one telemetry tag sample published by the floor gateway.
// RecordedAt keeps the gateway's own timestamp string verbatim; the device
// clocks emit UTC-naive values, and the timeline normalizer interprets them
// as UTC when it parses.
type MachineLog struct {
	ID         int64     `gorm:"autoIncrement;primaryKey" json:"-"`
	MachineID  string    `gorm:"size:128;index:idx_machine_tag;not null" json:"machine_id"`
	TagName    string    `gorm:"size:128;index:idx_machine_tag;not null" json:"tag_name"`
	TagValue   string    `gorm:"size:256" json:"tag_value"`
	RecordedAt string    `gorm:"size:64" json:"recorded_at"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
