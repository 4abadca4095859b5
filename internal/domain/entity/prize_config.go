package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Режимы распределения призового фонда
const (
	PrizeModePercentage = "percentage"
	PrizeModeFixed      = "fixed"
)

// PrizePlace описывает одно призовое место.
// В режиме percentage поле Value — процент от собранного фонда,
// в режиме fixed — фиксированная сумма в валюте пула.
type PrizePlace struct {
	Place       int             `json:"place"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description,omitempty"`
}

// PrizePlaceList - пользовательский тип для хранения таблицы мест в JSONB
type PrizePlaceList []PrizePlace

// Scan реализует интерфейс sql.Scanner для PrizePlaceList
func (l *PrizePlaceList) Scan(value interface{}) error {
	if value == nil {
		*l = PrizePlaceList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*l = PrizePlaceList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value реализует интерфейс driver.Valuer для PrizePlaceList
func (l PrizePlaceList) Value() (driver.Value, error) {
	if l == nil || len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// PrizeConfiguration задает правило распределения призов пула.
// PlatformFeePercent учитывается только в режиме percentage: на эту долю
// уменьшается доступный фонд (availablePrizePool).
type PrizeConfiguration struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	PoolID             uint            `gorm:"not null;uniqueIndex" json:"pool_id"`
	Mode               string          `gorm:"size:20;not null;default:'percentage'" json:"mode"`
	Places             PrizePlaceList  `gorm:"type:jsonb;not null" json:"places"`
	PlatformFeePercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"platform_fee_percent"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (PrizeConfiguration) TableName() string {
	return "prize_configurations"
}
