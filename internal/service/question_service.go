package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/repository"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service/scoring"
)

// QuestionService предоставляет методы для работы с бонусными вопросами
type QuestionService struct {
	questionRepo repository.QuestionRepository
	poolRepo     repository.PoolRepository
	standings    *StandingsService
}

// NewQuestionService создает новый сервис бонусных вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	poolRepo repository.PoolRepository,
	standings *StandingsService,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		poolRepo:     poolRepo,
		standings:    standings,
	}
}

// AddQuestions добавляет бонусные вопросы в пул
func (s *QuestionService) AddQuestions(poolID uint, questions []entity.BonusQuestion) ([]entity.BonusQuestion, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions provided", apperrors.ErrValidation)
	}

	pool, err := s.poolRepo.GetByID(poolID)
	if err != nil {
		return nil, err
	}
	if pool.IsCompleted() {
		return nil, fmt.Errorf("%w: season already completed", apperrors.ErrConflict)
	}

	for i := range questions {
		q := &questions[i]
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("%w: question #%d has empty text", apperrors.ErrValidation, i+1)
		}
		if !q.QuestionType.Valid() {
			return nil, fmt.Errorf("%w: question #%d has unknown type %q", apperrors.ErrValidation, i+1, q.QuestionType)
		}
		if q.PointsValue <= 0 {
			return nil, fmt.Errorf("%w: question #%d must have a positive points value", apperrors.ErrValidation, i+1)
		}
		q.PoolID = poolID
		// Новые вопросы всегда нераскрыты, что бы ни пришло в запросе
		q.CorrectAnswer = nil
		q.AnswerRevealed = false
		if q.SortOrder == 0 {
			q.SortOrder = i + 1
		}
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		return nil, err
	}

	log.Printf("[QuestionService] В пул %d добавлено %d бонусных вопросов", poolID, len(questions))
	return questions, nil
}

// ListQuestions возвращает вопросы пула. Для участников (admin=false)
// правильные ответы нераскрытых вопросов скрываются.
func (s *QuestionService) ListQuestions(poolID uint, admin bool) ([]entity.BonusQuestion, error) {
	if _, err := s.poolRepo.GetByID(poolID); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByPoolID(poolID)
	if err != nil {
		return nil, err
	}

	if !admin {
		for i := range questions {
			if !questions[i].AnswerRevealed {
				questions[i].CorrectAnswer = nil
			}
		}
	}
	return questions, nil
}

// RevealAnswer раскрывает правильный ответ вопроса. Кодировка ответа
// проверяется против типа вопроса; повторное раскрытие отклоняется
// (ErrConflict) — "отменить раскрытие" нельзя.
func (s *QuestionService) RevealAnswer(questionID uint, correctAnswer string) (*entity.BonusQuestion, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}

	if question.AnswerRevealed {
		return nil, fmt.Errorf("%w: answer already revealed", apperrors.ErrConflict)
	}

	correctAnswer = strings.TrimSpace(correctAnswer)
	if correctAnswer == "" {
		return nil, fmt.Errorf("%w: correct answer is required", apperrors.ErrValidation)
	}
	if err := validateCorrectAnswerShape(correctAnswer, question.QuestionType); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.questionRepo.RevealAnswer(questionID, correctAnswer); err != nil {
		return nil, err
	}

	s.standings.Invalidate(question.PoolID)
	log.Printf("[QuestionService] Раскрыт ответ вопроса ID=%d в пуле %d", questionID, question.PoolID)
	return s.questionRepo.GetByID(questionID)
}

// validateCorrectAnswerShape проверяет кодировку правильного ответа.
// Для dual_player_select допускаются обе кодировки: одиночная пара или
// массив допустимых пар.
func validateCorrectAnswerShape(answer string, questionType entity.QuestionType) error {
	if questionType == entity.QuestionTypeDualPlayerSelect {
		if !scoring.ValidDualAnswer(answer) {
			return fmt.Errorf("expected a {player1, player2} object or an array of them")
		}
		return nil
	}
	return validateAnswerShape(answer, questionType)
}

// UpdateQuestion обновляет текст, очки и порядок вопроса.
// Раскрытый вопрос неизменяем.
func (s *QuestionService) UpdateQuestion(questionID uint, text string, pointsValue, sortOrder int) (*entity.BonusQuestion, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if question.AnswerRevealed {
		return nil, fmt.Errorf("%w: revealed question is immutable", apperrors.ErrConflict)
	}

	if strings.TrimSpace(text) != "" {
		question.Text = text
	}
	if pointsValue > 0 {
		question.PointsValue = pointsValue
	}
	if sortOrder > 0 {
		question.SortOrder = sortOrder
	}

	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion удаляет вопрос (только пока ответ не раскрыт)
func (s *QuestionService) DeleteQuestion(questionID uint) error {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return err
	}
	if question.AnswerRevealed {
		return fmt.Errorf("%w: cannot delete a revealed question", apperrors.ErrConflict)
	}
	return s.questionRepo.Delete(questionID)
}
