package model

import "time"

// Work order lifecycle states.
const (
	WorkOrderOpen      = "open"
	WorkOrderInProcess = "in_process"
	WorkOrderDone      = "done"
)

// WorkOrder assigns a part to a machine for a production run. CreatedAt is
// the coverage boundary for the order's part timeline: intervals before it
// render as NO DATA regardless of older session logs.
type WorkOrder struct {
	WONumber    string    `gorm:"primaryKey;size:64" json:"wo_number"`
	MachineName string    `gorm:"size:128;index;not null" json:"machine_name"`
	ProductName string    `gorm:"size:256;not null;column:name_product" json:"name_product"`
	Quantity    int       `json:"quantity"`
	Status      string    `gorm:"size:32;not null" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}
