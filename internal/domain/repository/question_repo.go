package repository

import (
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с бонусными вопросами
type QuestionRepository interface {
	Create(question *entity.BonusQuestion) error
	CreateBatch(questions []entity.BonusQuestion) error
	GetByID(id uint) (*entity.BonusQuestion, error)
	// GetByPoolID возвращает все вопросы пула в порядке sort_order
	GetByPoolID(poolID uint) ([]entity.BonusQuestion, error)
	// GetRevealedByPoolID возвращает только вопросы с раскрытым ответом —
	// вход агрегатора бонусных очков
	GetRevealedByPoolID(poolID uint) ([]entity.BonusQuestion, error)
	// RevealAnswer точечно проставляет correct_answer и answer_revealed без full Save
	RevealAnswer(questionID uint, correctAnswer string) error
	Update(question *entity.BonusQuestion) error
	Delete(id uint) error
}
