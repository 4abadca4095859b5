package entity

import (
	"time"
)

// Константы статусов участника дома
const (
	HouseguestStatusActive  = "active"
	HouseguestStatusEvicted = "evicted"
	HouseguestStatusJury    = "jury"
	HouseguestStatusWinner  = "winner"
)

// Houseguest представляет участника отслеживаемого сезона шоу —
// единицу, которую драфтят команды.
type Houseguest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PoolID      uint      `gorm:"not null;index;uniqueIndex:idx_pool_hg_name" json:"pool_id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:idx_pool_hg_name" json:"name"`
	Status      string    `gorm:"size:20;not null;default:'active'" json:"status"`
	EvictedWeek *int      `json:"evicted_week,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Houseguest) TableName() string {
	return "houseguests"
}

// IsActive проверяет, остается ли участник в доме
func (h *Houseguest) IsActive() bool {
	return h.Status == HouseguestStatusActive
}
