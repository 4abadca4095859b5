package repository

import (
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

// PoolRepository определяет методы для работы с пулами
type PoolRepository interface {
	Create(pool *entity.Pool) error
	GetByID(id uint) (*entity.Pool, error)
	GetByInviteCode(code string) (*entity.Pool, error)
	List(limit, offset int) ([]entity.Pool, int64, error)
	// GetByStatus возвращает все пулы в заданном статусе (для фонового пересчета)
	GetByStatus(status string) ([]entity.Pool, error)
	UpdateStatus(poolID uint, status string) error
	Update(pool *entity.Pool) error
	Delete(id uint) error

	// Призовая конфигурация пула (1:1, upsert по pool_id)
	GetPrizeConfiguration(poolID uint) (*entity.PrizeConfiguration, error)
	SavePrizeConfiguration(cfg *entity.PrizeConfiguration) error
}
