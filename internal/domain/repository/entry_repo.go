package repository

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

// EntryRepository определяет методы для работы с заявками команд
type EntryRepository interface {
	Create(entry *entity.TeamEntry) error
	GetByID(id uint) (*entity.TeamEntry, error)
	// GetByPoolID возвращает заявки пула в порядке подачи (created_at ASC, id ASC).
	// Порядок существенен: при равных очках выигрывает более ранняя заявка.
	GetByPoolID(poolID uint) ([]entity.TeamEntry, error)
	CountByPoolID(poolID uint) (int64, error)
	// CountPaidByPoolID возвращает количество заявок с подтвержденной оплатой —
	// именно оно определяет размер собранного призового фонда
	CountPaidByPoolID(poolID uint) (int64, error)
	SetPaymentConfirmed(entryID uint, confirmed bool) error
	// UpdateTotalPoints обновляет денормализованный кеш очков (sort-index),
	// не трогая остальные поля
	UpdateTotalPoints(entryID uint, totalPoints int) error
	// AssignPlacement записывает итоговое место и приз ВНУТРИ ПЕРЕДАННОЙ ТРАНЗАКЦИИ
	AssignPlacement(tx *gorm.DB, entryID uint, place int, isWinner bool, prizeAmount decimal.Decimal) error
	Delete(id uint) error
}
