package postgres

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
)

// EntryRepo реализует repository.EntryRepository
type EntryRepo struct {
	db *gorm.DB
}

// NewEntryRepo создает новый репозиторий команд-участников
func NewEntryRepo(db *gorm.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// Create создает новую команду в пуле
func (r *EntryRepo) Create(entry *entity.TeamEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: team name already taken in this pool", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID возвращает команду по ID
func (r *EntryRepo) GetByID(id uint) (*entity.TeamEntry, error) {
	var entry entity.TeamEntry
	err := r.db.First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetByPoolID возвращает все команды пула в порядке регистрации.
// Порядок created_at ASC, id ASC важен: он разрешает ничьи при ранжировании.
func (r *EntryRepo) GetByPoolID(poolID uint) ([]entity.TeamEntry, error) {
	var entries []entity.TeamEntry
	err := r.db.Where("pool_id = ?", poolID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// CountByPoolID возвращает количество команд в пуле
func (r *EntryRepo) CountByPoolID(poolID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.TeamEntry{}).
		Where("pool_id = ?", poolID).
		Count(&count).Error
	return count, err
}

// CountPaidByPoolID возвращает количество команд с подтвержденной оплатой
func (r *EntryRepo) CountPaidByPoolID(poolID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.TeamEntry{}).
		Where("pool_id = ? AND payment_confirmed = true", poolID).
		Count(&count).Error
	return count, err
}

// SetPaymentConfirmed точечно обновляет флаг подтверждения оплаты
func (r *EntryRepo) SetPaymentConfirmed(entryID uint, confirmed bool) error {
	result := r.db.Model(&entity.TeamEntry{}).
		Where("id = ?", entryID).
		Update("payment_confirmed", confirmed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateTotalPoints обновляет сохраненную сумму очков команды.
// Сохраненное значение — кеш для сортировки; источником истины остается пересчет.
func (r *EntryRepo) UpdateTotalPoints(entryID uint, totalPoints int) error {
	return r.db.Model(&entity.TeamEntry{}).
		Where("id = ?", entryID).
		Update("total_points", totalPoints).
		Error
}

// AssignPlacement записывает итоговое место, флаг победителя и сумму приза
// В ПЕРЕДАННОЙ ТРАНЗАКЦИИ. Транзакция коммитится или откатывается снаружи.
func (r *EntryRepo) AssignPlacement(tx *gorm.DB, entryID uint, place int, isWinner bool, prizeAmount decimal.Decimal) error {
	return tx.Model(&entity.TeamEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]interface{}{
			"place":        place,
			"is_winner":    isWinner,
			"prize_amount": prizeAmount,
		}).Error
}

// Delete удаляет команду
func (r *EntryRepo) Delete(id uint) error {
	return r.db.Delete(&entity.TeamEntry{}, id).Error
}
