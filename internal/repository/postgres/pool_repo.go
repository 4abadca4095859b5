package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
)

// PoolRepo реализует repository.PoolRepository
type PoolRepo struct {
	db *gorm.DB
}

// NewPoolRepo создает новый репозиторий пулов
func NewPoolRepo(db *gorm.DB) *PoolRepo {
	return &PoolRepo{db: db}
}

// Create создает новый пул
func (r *PoolRepo) Create(pool *entity.Pool) error {
	if err := r.db.Create(pool).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invite code already in use", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID возвращает пул по ID
func (r *PoolRepo) GetByID(id uint) (*entity.Pool, error) {
	var pool entity.Pool
	err := r.db.First(&pool, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &pool, nil
}

// GetByInviteCode возвращает пул по коду приглашения
func (r *PoolRepo) GetByInviteCode(code string) (*entity.Pool, error) {
	var pool entity.Pool
	err := r.db.Where("invite_code = ?", code).First(&pool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &pool, nil
}

// List возвращает список пулов с пагинацией и total count
func (r *PoolRepo) List(limit, offset int) ([]entity.Pool, int64, error) {
	var pools []entity.Pool
	var total int64

	query := r.db.Model(&entity.Pool{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("id DESC").Find(&pools).Error
	if err != nil {
		return nil, 0, err
	}
	return pools, total, nil
}

// GetByStatus возвращает все пулы с указанным статусом
func (r *PoolRepo) GetByStatus(status string) ([]entity.Pool, error) {
	var pools []entity.Pool
	err := r.db.Where("status = ?", status).Order("id").Find(&pools).Error
	return pools, err
}

// UpdateStatus точечно обновляет статус пула без полного Save
func (r *PoolRepo) UpdateStatus(poolID uint, status string) error {
	return r.db.Model(&entity.Pool{}).
		Where("id = ?", poolID).
		Update("status", status).
		Error
}

// Update обновляет информацию о пуле
func (r *PoolRepo) Update(pool *entity.Pool) error {
	return r.db.Save(pool).Error
}

// Delete удаляет пул
func (r *PoolRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Pool{}, id).Error
}

// GetPrizeConfiguration возвращает конфигурацию призов для пула
func (r *PoolRepo) GetPrizeConfiguration(poolID uint) (*entity.PrizeConfiguration, error) {
	var cfg entity.PrizeConfiguration
	err := r.db.Where("pool_id = ?", poolID).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// SavePrizeConfiguration создает или обновляет конфигурацию призов пула (одна на пул)
func (r *PoolRepo) SavePrizeConfiguration(cfg *entity.PrizeConfiguration) error {
	var existing entity.PrizeConfiguration
	err := r.db.Where("pool_id = ?", cfg.PoolID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(cfg).Error
		}
		return err
	}

	cfg.ID = existing.ID
	cfg.CreatedAt = existing.CreatedAt
	return r.db.Save(cfg).Error
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
