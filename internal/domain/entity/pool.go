package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Константы статусов пула
const (
	PoolStatusDraftOpen = "draft_open"
	PoolStatusActive    = "active"
	PoolStatusCompleted = "completed"
)

// DefaultPicksPerTeam — размер команды, если пул не задал свой
const DefaultPicksPerTeam = 5

// Pool представляет один сезон фэнтези-пула: свои участники дома,
// свои команды, свои бонусные вопросы и своя призовая конфигурация.
type Pool struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"size:100;not null" json:"name"`
	Season           string          `gorm:"size:50;not null;default:''" json:"season"`
	Status           string          `gorm:"size:20;not null;default:'draft_open';index" json:"status"`
	PicksPerTeam     int             `gorm:"not null;default:5" json:"picks_per_team"`
	HasBuyIn         bool            `gorm:"not null;default:false" json:"has_buy_in"`
	EntryFeeAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"entry_fee_amount"`
	EntryFeeCurrency string          `gorm:"size:3;not null;default:'USD'" json:"entry_fee_currency"`
	InviteCode       string          `gorm:"size:36;not null;uniqueIndex" json:"invite_code"`
	DraftDeadline    *time.Time      `json:"draft_deadline,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Pool) TableName() string {
	return "pools"
}

// IsDraftOpen проверяет, открыт ли прием заявок
func (p *Pool) IsDraftOpen() bool {
	return p.Status == PoolStatusDraftOpen
}

// IsActive проверяет, идет ли сезон
func (p *Pool) IsActive() bool {
	return p.Status == PoolStatusActive
}

// IsCompleted проверяет, завершен ли сезон
func (p *Pool) IsCompleted() bool {
	return p.Status == PoolStatusCompleted
}
