package repository

import (
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

// EventRepository определяет методы для работы с событиями недель
// и правилами начисления очков
type EventRepository interface {
	Create(event *entity.WeeklyEvent) error
	GetByID(id uint) (*entity.WeeklyEvent, error)
	GetByPoolID(poolID uint) ([]entity.WeeklyEvent, error)
	GetByPoolAndWeek(poolID uint, week int) ([]entity.WeeklyEvent, error)
	Delete(id uint) error

	// SumPointsByHouseguest агрегирует events в индекс
	// "имя участника дома -> суммарные очки" одним запросом
	SumPointsByHouseguest(poolID uint) (map[string]int, error)

	// Правила начисления
	GetScoringRules() ([]entity.ScoringRule, error)
	GetRuleByCode(code string) (*entity.ScoringRule, error)
}
