// Package scoring содержит чистые функции подсчета очков и распределения призов.
// Функции не выполняют I/O и не имеют побочных эффектов: они работают над уже
// загруженными в память данными и могут вызываться конкурентно.
package scoring

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

// Сентинельные строки для отображения отсутствующих значений.
// UI-слой никогда не получает пустую строку и не делает null-проверок.
const (
	DisplayNoAnswer = "No answer"
	DisplayPending  = "TBD"
)

// pairAnswer — пара участников для вопроса типа dual_player_select.
// Порядок player1/player2 не имеет значения при сравнении.
type pairAnswer struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

func (p pairAnswer) valid() bool {
	return p.Player1 != "" && p.Player2 != ""
}

// matches сравнивает пары как неупорядоченные множества из двух имен.
func (p pairAnswer) matches(other pairAnswer) bool {
	return (p.Player1 == other.Player1 && p.Player2 == other.Player2) ||
		(p.Player1 == other.Player2 && p.Player2 == other.Player1)
}

// Evaluate проверяет ответ команды против раскрытого правильного ответа.
// Функция никогда не паникует: любой неразборчивый ввод деградирует до
// сравнения строк, а не до ошибки. Вызывающий обязан сам отфильтровать
// нераскрытые вопросы (см. entity.BonusQuestion.IsPending).
func Evaluate(submitted, correct string, questionType entity.QuestionType) bool {
	switch questionType {
	case entity.QuestionTypeDualPlayerSelect:
		return evaluateDual(submitted, correct)
	case entity.QuestionTypeNumber:
		return evaluateNumber(submitted, correct)
	default:
		// player_select и yes_no: точное сравнение значений
		return submitted == correct
	}
}

// evaluateDual сравнивает пару участников с любой из допустимых комбинаций.
// Правильный ответ может быть одиночным объектом {player1, player2} ИЛИ
// JSON-массивом таких объектов (когда засчитывается любая из нескольких пар).
func evaluateDual(submitted, correct string) bool {
	combos, ok := parseCombos(correct)
	if !ok {
		// Неразборчивый правильный ответ: сравниваем как строки
		return submitted == correct
	}

	sub, ok := parsePair(submitted)
	if !ok {
		return submitted == correct
	}

	for _, combo := range combos {
		if sub.matches(combo) {
			return true
		}
	}
	return false
}

// evaluateNumber сравнивает числовые ответы численно ("14" == "14.0").
// Если хотя бы одно значение не парсится как число, сравниваем строки.
func evaluateNumber(submitted, correct string) bool {
	subNum, errSub := strconv.ParseFloat(strings.TrimSpace(submitted), 64)
	corNum, errCor := strconv.ParseFloat(strings.TrimSpace(correct), 64)
	if errSub == nil && errCor == nil {
		return subNum == corNum
	}
	return submitted == correct
}

// parsePair разбирает одиночный объект {player1, player2}
func parsePair(raw string) (pairAnswer, bool) {
	var pair pairAnswer
	if err := json.Unmarshal([]byte(raw), &pair); err != nil {
		return pairAnswer{}, false
	}
	if !pair.valid() {
		return pairAnswer{}, false
	}
	return pair, true
}

// parseCombos разбирает правильный ответ dual-вопроса в список допустимых
// комбинаций, нормализуя обе кодировки (объект или массив объектов).
func parseCombos(raw string) ([]pairAnswer, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []pairAnswer
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, false
		}
		combos := make([]pairAnswer, 0, len(list))
		for _, pair := range list {
			if pair.valid() {
				combos = append(combos, pair)
			}
		}
		if len(combos) == 0 {
			return nil, false
		}
		return combos, true
	}

	pair, ok := parsePair(trimmed)
	if !ok {
		return nil, false
	}
	return []pairAnswer{pair}, true
}

// ValidDualAnswer сообщает, разбирается ли значение как пара участников
// или массив допустимых пар. Используется при валидации раскрываемых ответов.
func ValidDualAnswer(raw string) bool {
	_, ok := parseCombos(raw)
	return ok
}

// FormatAnswer форматирует ответ команды для отображения.
// Пустое значение отображается как "No answer".
func FormatAnswer(value string, questionType entity.QuestionType) string {
	if strings.TrimSpace(value) == "" {
		return DisplayNoAnswer
	}

	switch questionType {
	case entity.QuestionTypeDualPlayerSelect:
		if pair, ok := parsePair(value); ok {
			return pair.Player1 + " & " + pair.Player2
		}
		return value
	case entity.QuestionTypeYesNo:
		return formatYesNo(value)
	default:
		return value
	}
}

// FormatCorrectAnswer форматирует раскрытый правильный ответ для отображения.
// Пустое значение (ответ еще не раскрыт) отображается как "TBD".
// Несколько допустимых комбинаций dual-вопроса соединяются через " or ".
func FormatCorrectAnswer(value string, questionType entity.QuestionType) string {
	if strings.TrimSpace(value) == "" {
		return DisplayPending
	}

	switch questionType {
	case entity.QuestionTypeDualPlayerSelect:
		combos, ok := parseCombos(value)
		if !ok {
			return value
		}
		parts := make([]string, 0, len(combos))
		for _, pair := range combos {
			parts = append(parts, pair.Player1+" & "+pair.Player2)
		}
		return strings.Join(parts, " or ")
	case entity.QuestionTypeYesNo:
		return formatYesNo(value)
	default:
		return value
	}
}

func formatYesNo(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes":
		return "Yes"
	case "no":
		return "No"
	default:
		return value
	}
}
