package entity

import (
	"time"
)

// Коды стандартных правил начисления очков.
// Конкретные значения очков задаются строками scoring_rules (сидируются миграцией)
// и могут быть переопределены администратором при записи события.
const (
	RuleHOHWinner       = "hoh_winner"
	RulePOVWinner       = "pov_winner"
	RuleNomineeSurvives = "nominee_survives"
	RuleEvicted         = "evicted"
	RuleJuryMember      = "jury_member"
	RuleFinalist        = "finalist"
	RuleSeasonWinner    = "season_winner"
	RuleSpecial         = "special"
)

// ScoringRule задает количество очков за тип события недели
type ScoringRule struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"size:40;not null;uniqueIndex" json:"code"`
	Description string    `gorm:"size:255;not null;default:''" json:"description"`
	Points      int       `gorm:"not null" json:"points"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (ScoringRule) TableName() string {
	return "scoring_rules"
}

// WeeklyEvent представляет зафиксированный исход недели для конкретного
// участника дома. Поле Points — снимок значения правила на момент записи:
// последующее изменение scoring_rules не переписывает историю.
type WeeklyEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PoolID       uint      `gorm:"not null;index" json:"pool_id"`
	HouseguestID uint      `gorm:"not null;index" json:"houseguest_id"`
	Week         int       `gorm:"not null" json:"week"`
	EventType    string    `gorm:"size:40;not null" json:"event_type"`
	Points       int       `gorm:"not null" json:"points"`
	Note         string    `gorm:"size:255;not null;default:''" json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (WeeklyEvent) TableName() string {
	return "weekly_events"
}
