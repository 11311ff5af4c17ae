package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"factory-ops-backend/internal/model"
)

// Domain errors surfaced to the API layer.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Devices
	ListDevices(ctx context.Context) ([]model.Device, error)
	CreateDevice(ctx context.Context, d model.Device) error
	UpdateDevice(ctx context.Context, machineName, serialNumber string) error
	DeleteDevice(ctx context.Context, machineName string) error

	// Manpower
	ListManpower(ctx context.Context) ([]model.Manpower, error)
	CreateManpower(ctx context.Context, m model.Manpower) error
	UpdateManpower(ctx context.Context, m model.Manpower) error
	DeleteManpower(ctx context.Context, nik string) error
	ListManpowerLogs(ctx context.Context) ([]model.ManpowerLog, error)

	// Parts and session logs
	ListParts(ctx context.Context) ([]model.Part, error)
	CreatePart(ctx context.Context, p model.Part) error
	UpdatePart(ctx context.Context, old, updated model.Part) error
	DeletePart(ctx context.Context, p model.Part) error
	ListProductLogs(ctx context.Context) ([]model.ProductLog, error)
	ProductLogsForMachine(ctx context.Context, machineName string) ([]model.ProductLog, error)
	AppendProductLog(ctx context.Context, l model.ProductLog) error

	// Work orders
	ListWorkOrders(ctx context.Context) ([]model.WorkOrder, error)
	GetWorkOrder(ctx context.Context, woNumber string) (model.WorkOrder, error)
	CreateWorkOrder(ctx context.Context, wo *model.WorkOrder) error
	UpdateWorkOrderStatus(ctx context.Context, woNumber, status string) error
	DeleteWorkOrder(ctx context.Context, woNumber string) error

	// Telemetry
	InsertMachineLogs(ctx context.Context, rows []model.MachineLog) error
	LatestTagValues(ctx context.Context, machineID string) (map[string]string, error)
	StatusEvents(ctx context.Context, machineID string) ([]model.MachineLog, error)
	MachineLogsBetween(ctx context.Context, machineID string, start, end time.Time) ([]model.MachineLog, error)

	// Accounts
	Authenticate(ctx context.Context, username, password string) (model.Account, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB { return s.db }

// --- Devices ---

func (s *gormStore) ListDevices(ctx context.Context) ([]model.Device, error) {
	var devices []model.Device
	err := s.db.WithContext(ctx).Order("machine_name ASC").Find(&devices).Error
	return devices, err
}

func (s *gormStore) CreateDevice(ctx context.Context, d model.Device) error {
	var existing model.Device
	err := s.db.WithContext(ctx).First(&existing, "machine_name = ?", d.MachineName).Error
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.WithContext(ctx).Create(&d).Error
}

func (s *gormStore) UpdateDevice(ctx context.Context, machineName, serialNumber string) error {
	res := s.db.WithContext(ctx).Model(&model.Device{}).
		Where("machine_name = ?", machineName).
		Update("serial_number", serialNumber)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteDevice(ctx context.Context, machineName string) error {
	return s.db.WithContext(ctx).Delete(&model.Device{MachineName: machineName}).Error
}

// --- Manpower ---

func (s *gormStore) ListManpower(ctx context.Context) ([]model.Manpower, error) {
	var mp []model.Manpower
	err := s.db.WithContext(ctx).Order("name ASC").Find(&mp).Error
	return mp, err
}

func (s *gormStore) CreateManpower(ctx context.Context, m model.Manpower) error {
	var existing model.Manpower
	err := s.db.WithContext(ctx).First(&existing, "nik = ?", m.NIK).Error
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.WithContext(ctx).Create(&m).Error
}

// UpdateManpower edits an operator's master record and records a forced
// logout so a stale badge session cannot survive the edit.
func (s *gormStore) UpdateManpower(ctx context.Context, m model.Manpower) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Manpower{}).Where("nik = ?", m.NIK).
			Updates(map[string]any{
				"name":       m.Name,
				"department": m.Department,
				"position":   m.Position,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		logout := model.ManpowerLog{NIK: m.NIK, Name: m.Name, Status: "logout"}
		return tx.Create(&logout).Error
	})
}

func (s *gormStore) DeleteManpower(ctx context.Context, nik string) error {
	res := s.db.WithContext(ctx).Delete(&model.Manpower{}, "nik = ?", nik)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ListManpowerLogs(ctx context.Context) ([]model.ManpowerLog, error) {
	var logs []model.ManpowerLog
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&logs).Error
	return logs, err
}

// --- Parts ---

func (s *gormStore) ListParts(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	err := s.db.WithContext(ctx).Order("name_product ASC").Find(&parts).Error
	return parts, err
}

// CreatePart registers a part and seeds its session log with a stop marker
// so the new part starts out inactive.
func (s *gormStore) CreatePart(ctx context.Context, p model.Part) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Part
		err := tx.First(&existing, "machine_name = ? AND name_product = ?", p.MachineName, p.ProductName).Error
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		seed := model.ProductLog{
			MachineName:  p.MachineName,
			ProductName:  p.ProductName,
			Action:       "stop",
			ManpowerName: "admin",
		}
		return tx.Create(&seed).Error
	})
}

// UpdatePart renames a part. A stop marker is logged under the new name;
// old logs remain untouched so history stays attributable.
func (s *gormStore) UpdatePart(ctx context.Context, old, updated model.Part) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Part
		err := tx.First(&existing, "machine_name = ? AND name_product = ?", old.MachineName, old.ProductName).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&model.Part{}).
			Where("machine_name = ? AND name_product = ?", old.MachineName, old.ProductName).
			Updates(map[string]any{
				"machine_name": updated.MachineName,
				"name_product": updated.ProductName,
			}).Error; err != nil {
			return err
		}
		marker := model.ProductLog{
			MachineName:  updated.MachineName,
			ProductName:  updated.ProductName,
			Action:       "stop",
			ManpowerName: "admin",
		}
		return tx.Create(&marker).Error
	})
}

// DeletePart removes the part master record only; its logs are kept.
func (s *gormStore) DeletePart(ctx context.Context, p model.Part) error {
	res := s.db.WithContext(ctx).
		Delete(&model.Part{}, "machine_name = ? AND name_product = ?", p.MachineName, p.ProductName)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ListProductLogs(ctx context.Context) ([]model.ProductLog, error) {
	var logs []model.ProductLog
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&logs).Error
	return logs, err
}

func (s *gormStore) ProductLogsForMachine(ctx context.Context, machineName string) ([]model.ProductLog, error) {
	var logs []model.ProductLog
	err := s.db.WithContext(ctx).
		Where("machine_name = ?", machineName).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

func (s *gormStore) AppendProductLog(ctx context.Context, l model.ProductLog) error {
	return s.db.WithContext(ctx).Create(&l).Error
}

// --- Work orders ---

func (s *gormStore) ListWorkOrders(ctx context.Context) ([]model.WorkOrder, error) {
	var orders []model.WorkOrder
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (s *gormStore) GetWorkOrder(ctx context.Context, woNumber string) (model.WorkOrder, error) {
	var wo model.WorkOrder
	err := s.db.WithContext(ctx).First(&wo, "wo_number = ?", woNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.WorkOrder{}, ErrNotFound
	}
	return wo, err
}

func (s *gormStore) CreateWorkOrder(ctx context.Context, wo *model.WorkOrder) error {
	return s.db.WithContext(ctx).Create(wo).Error
}

func (s *gormStore) UpdateWorkOrderStatus(ctx context.Context, woNumber, status string) error {
	res := s.db.WithContext(ctx).Model(&model.WorkOrder{}).
		Where("wo_number = ?", woNumber).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteWorkOrder(ctx context.Context, woNumber string) error {
	res := s.db.WithContext(ctx).Delete(&model.WorkOrder{}, "wo_number = ?", woNumber)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Telemetry ---

func (s *gormStore) InsertMachineLogs(ctx context.Context, rows []model.MachineLog) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

// LatestTagValues pivots the most recent sample of each tag for a machine.
// The scan is bounded to the newest rows; a machine publishing its full tag
// set every few seconds stays well inside the limit.
func (s *gormStore) LatestTagValues(ctx context.Context, machineID string) (map[string]string, error) {
	var rows []model.MachineLog
	err := s.db.WithContext(ctx).
		Where("machine_id = ?", machineID).
		Order("created_at DESC").
		Limit(500).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	values := make(map[string]string)
	for _, r := range rows {
		if _, seen := values[r.TagName]; !seen {
			values[r.TagName] = r.TagValue
		}
	}
	return values, nil
}

// StatusEvents returns the machine's status-change samples in ascending
// order, the shape the timeline normalizer expects.
func (s *gormStore) StatusEvents(ctx context.Context, machineID string) ([]model.MachineLog, error) {
	var rows []model.MachineLog
	err := s.db.WithContext(ctx).
		Where("machine_id = ? AND tag_name = ?", machineID, model.TagMachineStatus).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *gormStore) MachineLogsBetween(ctx context.Context, machineID string, start, end time.Time) ([]model.MachineLog, error) {
	var rows []model.MachineLog
	err := s.db.WithContext(ctx).
		Where("machine_id = ? AND created_at >= ? AND created_at <= ?", machineID, start, end).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// --- Accounts ---

func (s *gormStore) Authenticate(ctx context.Context, username, password string) (model.Account, error) {
	var account model.Account
	err := s.db.WithContext(ctx).
		First(&account, "username = ? AND password = ?", username, password).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, ErrNotFound
	}
	return account, err
}

func (s *gormStore) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account model.Account
		err := tx.First(&account, "username = ? AND password = ?", username, oldPassword).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return tx.Model(&model.Account{}).
			Where("username = ?", username).
			Update("password", newPassword).Error
	})
}
