// Package quiz implements the three-question personalization quiz.
// Answers are typed categories and the recommendation comes from an
// ordered rule table evaluated first-match-wins, so the table is
// testable without any conversation plumbing around it.
package quiz

// Answer is a typed answer category. The raw value doubles as the
// callback token payload.
type Answer string

const (
	EnergyLow  Answer = "energy_low"
	EnergyMid  Answer = "energy_mid"
	EnergyHigh Answer = "energy_high"

	MoodAnxious Answer = "mood_anxious"
	MoodLow     Answer = "mood_low"
	MoodCalm    Answer = "mood_calm"

	TimeShort Answer = "time_short"
	TimeMid   Answer = "time_mid"
	TimeLong  Answer = "time_long"
)

// Answers holds one answer per question, in question order.
type Answers struct {
	Energy Answer
	Mood   Answer
	Time   Answer
}

// Option is one answer button.
type Option struct {
	Label  string
	Answer Answer
}

// Question is one quiz step.
type Question struct {
	Text    string
	Options []Option
}

// Questions in ask order.
var Questions = [3]Question{
	{
		Text: "Вопрос 1/3. Сколько у тебя сейчас сил?",
		Options: []Option{
			{"Почти нет", EnergyLow},
			{"Средне", EnergyMid},
			{"Много", EnergyHigh},
		},
	},
	{
		Text: "Вопрос 2/3. Какое у тебя настроение чаще всего в последние дни?",
		Options: []Option{
			{"Тревожное", MoodAnxious},
			{"Подавленное", MoodLow},
			{"Ровное", MoodCalm},
		},
	},
	{
		Text: "Вопрос 3/3. Сколько времени в день ты готов(а) уделять себе?",
		Options: []Option{
			{"5–10 минут", TimeShort},
			{"До получаса", TimeMid},
			{"Больше получаса", TimeLong},
		},
	},
}

// Rule pairs a predicate with a canned recommendation.
type Rule struct {
	Name      string
	Match     func(Answers) bool
	Recommend string
}

// Rules is evaluated in order; the last rule matches everything.
var Rules = []Rule{
	{
		Name:  "restore",
		Match: func(a Answers) bool { return a.Energy == EnergyLow },
		Recommend: "Твой фокус на эту неделю — восстановление. Ранний отход ко сну, " +
			"минимум обязательств, практики дня можно сокращать вдвое. Сил мало — и это нормально.",
	},
	{
		Name:  "calm",
		Match: func(a Answers) bool { return a.Mood == MoodAnxious },
		Recommend: "Твой фокус — снижение тревоги. Добавь к практикам дня дыхание 4-7-8 " +
			"утром и вечером, а вечерний итог пиши на бумаге, не в телефоне.",
	},
	{
		Name:  "micro",
		Match: func(a Answers) bool { return a.Time == TimeShort },
		Recommend: "Твой формат — микропрактики. Делай только упражнение дня, по 5–10 минут, " +
			"но каждый день. Регулярность здесь важнее длительности.",
	},
	{
		Name:  "full",
		Match: func(Answers) bool { return true },
		Recommend: "Тебе подойдёт полный формат курса: все четыре сообщения дня плюс " +
			"вечерние заметки. Попробуй добавить утром 10 минут движения.",
	},
}

// Recommend returns the first matching rule's text.
func Recommend(a Answers) string {
	for _, r := range Rules {
		if r.Match(a) {
			return r.Recommend
		}
	}
	// unreachable: the last rule is a catch-all
	return Rules[len(Rules)-1].Recommend
}
