package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

func TestEvaluate_Reflexivity(t *testing.T) {
	// Arrange: корректно типизированное значение для каждого типа вопроса
	testCases := []struct {
		name         string
		questionType entity.QuestionType
		value        string
	}{
		{"PlayerSelect", entity.QuestionTypePlayerSelect, "Alice"},
		{"DualPlayerSelect", entity.QuestionTypeDualPlayerSelect, `{"player1":"Alice","player2":"Bob"}`},
		{"YesNo", entity.QuestionTypeYesNo, "yes"},
		{"Number", entity.QuestionTypeNumber, "14"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act & Assert
			assert.True(t, Evaluate(tc.value, tc.value, tc.questionType),
				"Значение должно совпадать само с собой для типа %s", tc.questionType)
		})
	}
}

func TestEvaluate_PlayerSelect(t *testing.T) {
	assert.True(t, Evaluate("Alice", "Alice", entity.QuestionTypePlayerSelect))
	assert.False(t, Evaluate("Bob", "Alice", entity.QuestionTypePlayerSelect),
		"Другое имя не должно засчитываться")
	assert.False(t, Evaluate("alice", "Alice", entity.QuestionTypePlayerSelect),
		"Сравнение чувствительно к регистру")
}

func TestEvaluate_DualPlayerSelect_OrderIndependence(t *testing.T) {
	// Arrange
	correct := `{"player1":"Alice","player2":"Bob"}`
	submittedReversed := `{"player1":"Bob","player2":"Alice"}`

	// Act & Assert: порядок игроков в паре не имеет значения
	assert.True(t, Evaluate(submittedReversed, correct, entity.QuestionTypeDualPlayerSelect),
		"Пара {B,A} должна совпадать с {A,B}")
}

func TestEvaluate_DualPlayerSelect_MultipleCombinations(t *testing.T) {
	// Arrange: правильный ответ закодирован массивом допустимых комбинаций
	correct := `[{"player1":"Alice","player2":"Bob"},{"player1":"Carol","player2":"Dave"}]`

	// Act & Assert
	assert.True(t, Evaluate(`{"player1":"Bob","player2":"Alice"}`, correct, entity.QuestionTypeDualPlayerSelect),
		"Перевернутая первая комбинация должна засчитываться")
	assert.True(t, Evaluate(`{"player1":"Carol","player2":"Dave"}`, correct, entity.QuestionTypeDualPlayerSelect),
		"Вторая комбинация должна засчитываться")
	assert.False(t, Evaluate(`{"player1":"Alice","player2":"Carol"}`, correct, entity.QuestionTypeDualPlayerSelect),
		"Смешанная пара из разных комбинаций не должна засчитываться")
}

func TestEvaluate_DualPlayerSelect_MalformedCorrectAnswer(t *testing.T) {
	// Неразборчивый JSON в правильном ответе деградирует до сравнения строк
	assert.False(t, Evaluate(`{"player1":"Alice","player2":"Bob"}`, "not json at all", entity.QuestionTypeDualPlayerSelect))
	assert.True(t, Evaluate("not json at all", "not json at all", entity.QuestionTypeDualPlayerSelect),
		"При строковом фолбэке идентичные строки совпадают")
}

func TestEvaluate_Number(t *testing.T) {
	// Числа сравниваются численно, а не как строки
	assert.True(t, Evaluate("14", "14", entity.QuestionTypeNumber))
	assert.True(t, Evaluate("14.0", "14", entity.QuestionTypeNumber),
		"14.0 и 14 численно равны")
	assert.True(t, Evaluate(" 14 ", "14", entity.QuestionTypeNumber),
		"Пробелы вокруг числа не мешают сравнению")
	assert.False(t, Evaluate("15", "14", entity.QuestionTypeNumber))
	// Фолбэк на строки, если значение не парсится
	assert.True(t, Evaluate("fourteen", "fourteen", entity.QuestionTypeNumber))
	assert.False(t, Evaluate("fourteen", "14", entity.QuestionTypeNumber))
}

func TestEvaluate_YesNo(t *testing.T) {
	assert.True(t, Evaluate("yes", "yes", entity.QuestionTypeYesNo))
	assert.False(t, Evaluate("no", "yes", entity.QuestionTypeYesNo),
		"Ответ 'no' против правильного 'yes' неверен")
}

func TestEvaluate_NeverPanicsOnGarbage(t *testing.T) {
	// Arrange: произвольный мусор вместо правильного ответа
	garbage := []string{"", "{", "[{]", `{"player1":1}`, "\x00\xff", "[]", "null", `"quoted"`}
	types := []entity.QuestionType{
		entity.QuestionTypePlayerSelect,
		entity.QuestionTypeDualPlayerSelect,
		entity.QuestionTypeYesNo,
		entity.QuestionTypeNumber,
	}

	// Act & Assert: ни одна комбинация не должна паниковать
	for _, qt := range types {
		for _, g := range garbage {
			assert.NotPanics(t, func() {
				Evaluate("anything", g, qt)
				Evaluate(g, "anything", qt)
			}, "Evaluate не должен паниковать на мусоре %q для типа %s", g, qt)
		}
	}
}

func TestFormatAnswer(t *testing.T) {
	assert.Equal(t, "No answer", FormatAnswer("", entity.QuestionTypePlayerSelect),
		"Пустой ответ отображается как 'No answer'")
	assert.Equal(t, "Alice", FormatAnswer("Alice", entity.QuestionTypePlayerSelect))
	assert.Equal(t, "Alice & Bob", FormatAnswer(`{"player1":"Alice","player2":"Bob"}`, entity.QuestionTypeDualPlayerSelect))
	assert.Equal(t, "raw garbage", FormatAnswer("raw garbage", entity.QuestionTypeDualPlayerSelect),
		"Неразборчивая пара отображается как есть")
	assert.Equal(t, "Yes", FormatAnswer("yes", entity.QuestionTypeYesNo))
	assert.Equal(t, "No", FormatAnswer("no", entity.QuestionTypeYesNo))
	assert.Equal(t, "14", FormatAnswer("14", entity.QuestionTypeNumber))
}

func TestFormatCorrectAnswer(t *testing.T) {
	assert.Equal(t, "TBD", FormatCorrectAnswer("", entity.QuestionTypeYesNo),
		"Нераскрытый ответ отображается как 'TBD'")
	assert.Equal(t, "Alice & Bob", FormatCorrectAnswer(`{"player1":"Alice","player2":"Bob"}`, entity.QuestionTypeDualPlayerSelect))
	assert.Equal(t, "Alice & Bob or Carol & Dave",
		FormatCorrectAnswer(`[{"player1":"Alice","player2":"Bob"},{"player1":"Carol","player2":"Dave"}]`, entity.QuestionTypeDualPlayerSelect),
		"Несколько комбинаций соединяются через ' or '")
	assert.Equal(t, "Yes", FormatCorrectAnswer("yes", entity.QuestionTypeYesNo))
}
