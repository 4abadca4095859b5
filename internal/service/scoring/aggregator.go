package scoring

import (
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

// WeeklyPoints суммирует накопленные очки задрафтованных участников команды.
// Участник без записи в индексе очков дает 0, а не ошибку. Учитываются только
// первые picksPerTeam слотов команды (размер команды настраивается в пуле).
func WeeklyPoints(entry *entity.TeamEntry, pointsByHouseguest map[string]int, picksPerTeam int) int {
	picks := entry.Picks
	if picksPerTeam > 0 && len(picks) > picksPerTeam {
		picks = picks[:picksPerTeam]
	}

	total := 0
	for _, name := range picks {
		total += pointsByHouseguest[name]
	}
	return total
}

// BonusPoints суммирует points_value по всем раскрытым вопросам, на которые
// команда ответила верно. Нераскрытые вопросы и отсутствующие ответы дают 0.
func BonusPoints(entry *entity.TeamEntry, questions []entity.BonusQuestion) int {
	total := 0
	for i := range questions {
		q := &questions[i]
		if q.IsPending() {
			continue
		}
		submitted := entry.AnswerFor(q.ID)
		if submitted == "" {
			continue
		}
		if Evaluate(submitted, q.CorrectAnswerValue(), q.QuestionType) {
			total += q.PointsValue
		}
	}
	return total
}

// TotalPoints — полная сумма очков команды: очки за участников плюс бонусы.
// Значение всегда пересчитывается из исходных данных; сохраненная в БД колонка
// total_points — только кеш для сортировки, расхождение с которым показывается
// администратору, а не скрывается.
func TotalPoints(entry *entity.TeamEntry, pointsByHouseguest map[string]int, questions []entity.BonusQuestion, picksPerTeam int) int {
	return WeeklyPoints(entry, pointsByHouseguest, picksPerTeam) + BonusPoints(entry, questions)
}
