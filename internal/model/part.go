package model

import "time"

// Part is a producible part registered against one machine. The pair of
// machine and part name identifies it; deleting a part keeps its logs.
type Part struct {
	MachineName string    `gorm:"primaryKey;size:128" json:"machine_name"`
	ProductName string    `gorm:"primaryKey;size:256;column:name_product" json:"name_product"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// ProductLog is the session action log: an operator starting or stopping
// work on a part at a machine. The timeline engine's session
// cross-referencer reads these.
type ProductLog struct {
	ID           int64     `gorm:"autoIncrement;primaryKey" json:"id"`
	MachineName  string    `gorm:"size:128;index;not null" json:"machine_name"`
	ProductName  string    `gorm:"size:256;not null;column:name_product" json:"name_product"`
	Action       string    `gorm:"size:16;not null" json:"action"` // start | stop
	ManpowerName string    `gorm:"size:256;column:name_manpower" json:"name_manpower"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
