package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий бонусных вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый бонусный вопрос
func (r *QuestionRepo) Create(question *entity.BonusQuestion) error {
	return r.db.Create(question).Error
}

// CreateBatch создает несколько вопросов одним запросом
func (r *QuestionRepo) CreateBatch(questions []entity.BonusQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.BonusQuestion, error) {
	var question entity.BonusQuestion
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByPoolID возвращает все вопросы пула в порядке отображения
func (r *QuestionRepo) GetByPoolID(poolID uint) ([]entity.BonusQuestion, error) {
	var questions []entity.BonusQuestion
	err := r.db.Where("pool_id = ?", poolID).
		Order("sort_order ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

// GetRevealedByPoolID возвращает только вопросы с раскрытым ответом
func (r *QuestionRepo) GetRevealedByPoolID(poolID uint) ([]entity.BonusQuestion, error) {
	var questions []entity.BonusQuestion
	err := r.db.Where("pool_id = ? AND answer_revealed = true", poolID).
		Order("sort_order ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

// RevealAnswer атомарно записывает правильный ответ и выставляет answer_revealed.
// RowsAffected == 0 означает, что вопрос не найден ИЛИ ответ уже раскрыт.
func (r *QuestionRepo) RevealAnswer(questionID uint, correctAnswer string) error {
	result := r.db.Model(&entity.BonusQuestion{}).
		Where("id = ? AND answer_revealed = false", questionID).
		Updates(map[string]interface{}{
			"correct_answer":  correctAnswer,
			"answer_revealed": true,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Различаем "не найден" и "уже раскрыт"
		var question entity.BonusQuestion
		if err := r.db.First(&question, questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		return apperrors.ErrConflict
	}
	return nil
}

// Update обновляет информацию о вопросе
func (r *QuestionRepo) Update(question *entity.BonusQuestion) error {
	return r.db.Save(question).Error
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(id uint) error {
	return r.db.Delete(&entity.BonusQuestion{}, id).Error
}
