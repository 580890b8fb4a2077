package assistant

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-route-planner/internal/tags"
)

func conversationInstruction() string {
	return fmt.Sprintf(`Ты ассистент, который собирает параметры для планирования однодневного культурного маршрута по Ростову-на-Дону.
Отвечай строго валидным JSON без пояснений.
Форматы ответов:
ASK: {"mode":"ask","question":"...","field":"...","input":"date|single|multiselect","options":[...]}
READY: {"mode":"ready","prefs":{"date":"YYYY-MM-DD","city":"...","tags":[allowed],"budget":"low|medium|high","pace":"relaxed|normal|fast"}}
Разрешённые теги: %s. При необходимости подсказывай варианты из списка.`, strings.Join(tags.Allowed(), ", "))
}

const explainInstruction = "Ты объясняешь пользователю маршрут. Ответ на русском, 2-3 предложения, без JSON."

type flowStep struct {
	field    string
	question string
	input    string
	options  func() []string
}

// scriptedFlow is asked in order; the first missing field becomes the
// next question.
var scriptedFlow = []flowStep{
	{
		field:    "date",
		question: "На какой день планируем поездку? Формат YYYY-MM-DD.",
		input:    InputDate,
		options:  func() []string { return []string{} },
	},
	{
		field:    "tags",
		question: "Что интересует? Можете выбрать несколько вариантов.",
		input:    InputMultiselect,
		options:  tags.Allowed,
	},
	{
		field:    "budget",
		question: "Какой бюджет учитывать? (low / medium / high)",
		input:    InputSingle,
		options:  func() []string { return []string{"low", "medium", "high"} },
	},
	{
		field:    "pace",
		question: "Какой темп прогулки комфортен? (relaxed / normal / fast)",
		input:    InputSingle,
		options:  func() []string { return []string{"relaxed", "normal", "fast"} },
	},
}

func (p Preferences) has(field string) bool {
	switch field {
	case "date":
		return p.Date != ""
	case "tags":
		return len(p.Tags) > 0
	case "budget":
		return p.Budget != ""
	case "pace":
		return p.Pace != ""
	default:
		return false
	}
}
