package repository

import (
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

// HouseguestRepository определяет методы для работы с участниками дома
type HouseguestRepository interface {
	Create(houseguest *entity.Houseguest) error
	CreateBatch(houseguests []entity.Houseguest) error
	GetByID(id uint) (*entity.Houseguest, error)
	GetByPoolID(poolID uint) ([]entity.Houseguest, error)
	// UpdateStatus точечно обновляет статус и (опционально) неделю выбытия
	UpdateStatus(houseguestID uint, status string, evictedWeek *int) error
	Delete(id uint) error
}
