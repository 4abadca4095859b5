package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
)

// HouseguestRepo реализует repository.HouseguestRepository
type HouseguestRepo struct {
	db *gorm.DB
}

// NewHouseguestRepo создает новый репозиторий участников шоу
func NewHouseguestRepo(db *gorm.DB) *HouseguestRepo {
	return &HouseguestRepo{db: db}
}

// Create добавляет участника в пул
func (r *HouseguestRepo) Create(hg *entity.Houseguest) error {
	if err := r.db.Create(hg).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: houseguest name already exists in this pool", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// CreateBatch добавляет несколько участников одним запросом
func (r *HouseguestRepo) CreateBatch(hgs []entity.Houseguest) error {
	if len(hgs) == 0 {
		return nil
	}
	if err := r.db.Create(&hgs).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: houseguest name already exists in this pool", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID возвращает участника по ID
func (r *HouseguestRepo) GetByID(id uint) (*entity.Houseguest, error) {
	var hg entity.Houseguest
	err := r.db.First(&hg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &hg, nil
}

// GetByPoolID возвращает всех участников пула по алфавиту
func (r *HouseguestRepo) GetByPoolID(poolID uint) ([]entity.Houseguest, error) {
	var hgs []entity.Houseguest
	err := r.db.Where("pool_id = ?", poolID).
		Order("name ASC").
		Find(&hgs).Error
	return hgs, err
}

// UpdateStatus точечно обновляет статус участника и (опционально) неделю выбывания
func (r *HouseguestRepo) UpdateStatus(id uint, status string, evictedWeek *int) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if evictedWeek != nil {
		updates["evicted_week"] = *evictedWeek
	}

	result := r.db.Model(&entity.Houseguest{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет участника
func (r *HouseguestRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Houseguest{}, id).Error
}
