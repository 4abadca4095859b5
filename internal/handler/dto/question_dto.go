package dto

import (
	"time"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service/scoring"
)

// QuestionResponse представляет бонусный вопрос в формате для ответа клиенту.
// CorrectAnswerDisplay — отформатированная строка ("TBD" пока ответ не раскрыт),
// чтобы UI не разбирал кодировки ответов.
type QuestionResponse struct {
	ID                   uint      `json:"id"`
	PoolID               uint      `json:"pool_id"`
	Text                 string    `json:"text"`
	QuestionType         string    `json:"question_type"`
	PointsValue          int       `json:"points_value"`
	AnswerRevealed       bool      `json:"answer_revealed"`
	CorrectAnswer        *string   `json:"correct_answer,omitempty"`
	CorrectAnswerDisplay string    `json:"correct_answer_display"`
	SortOrder            int       `json:"sort_order"`
	CreatedAt            time.Time `json:"created_at"`
}

// NewQuestionResponse создает DTO для бонусного вопроса
func NewQuestionResponse(q *entity.BonusQuestion) *QuestionResponse {
	return &QuestionResponse{
		ID:                   q.ID,
		PoolID:               q.PoolID,
		Text:                 q.Text,
		QuestionType:         string(q.QuestionType),
		PointsValue:          q.PointsValue,
		AnswerRevealed:       q.AnswerRevealed,
		CorrectAnswer:        q.CorrectAnswer,
		CorrectAnswerDisplay: scoring.FormatCorrectAnswer(q.CorrectAnswerValue(), q.QuestionType),
		SortOrder:            q.SortOrder,
		CreatedAt:            q.CreatedAt,
	}
}

// NewListQuestionResponse создает DTO для списка вопросов
func NewListQuestionResponse(questions []entity.BonusQuestion) []*QuestionResponse {
	items := make([]*QuestionResponse, 0, len(questions))
	for i := range questions {
		items = append(items, NewQuestionResponse(&questions[i]))
	}
	return items
}

// EventResponse представляет записанное событие недели
type EventResponse struct {
	ID           uint      `json:"id"`
	PoolID       uint      `json:"pool_id"`
	HouseguestID uint      `json:"houseguest_id"`
	Week         int       `json:"week"`
	EventType    string    `json:"event_type"`
	Points       int       `json:"points"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewEventResponse создает DTO для события
func NewEventResponse(e *entity.WeeklyEvent) *EventResponse {
	return &EventResponse{
		ID:           e.ID,
		PoolID:       e.PoolID,
		HouseguestID: e.HouseguestID,
		Week:         e.Week,
		EventType:    e.EventType,
		Points:       e.Points,
		Note:         e.Note,
		CreatedAt:    e.CreatedAt,
	}
}

// NewListEventResponse создает DTO для списка событий
func NewListEventResponse(events []entity.WeeklyEvent) []*EventResponse {
	items := make([]*EventResponse, 0, len(events))
	for i := range events {
		items = append(items, NewEventResponse(&events[i]))
	}
	return items
}

// ScoringRuleResponse представляет правило начисления очков
type ScoringRuleResponse struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// NewListScoringRuleResponse создает DTO для справочника правил
func NewListScoringRuleResponse(rules []entity.ScoringRule) []*ScoringRuleResponse {
	items := make([]*ScoringRuleResponse, 0, len(rules))
	for i := range rules {
		items = append(items, &ScoringRuleResponse{
			ID:          rules[i].ID,
			Code:        rules[i].Code,
			Description: rules[i].Description,
			Points:      rules[i].Points,
		})
	}
	return items
}
