package content

import (
	"fmt"

	"selfcare-course-bot/internal/models"
)

// Option is one evening answer button: a visible label and the opaque
// callback token the handler receives back verbatim.
type Option struct {
	Label string
	Token string
}

// DayContent bundles the four message bodies for one course day.
// Options is non-nil only on reflection days, attached to the evening message.
type DayContent struct {
	Day      int
	Title    string
	Morning  string
	Exercise string
	Phrase   string
	Evening  string
	Options  []Option
}

// Text returns the message body for a slot.
func (d DayContent) Text(slot models.Slot) string {
	switch slot {
	case models.SlotMorning:
		return d.Morning
	case models.SlotExercise:
		return d.Exercise
	case models.SlotPhrase:
		return d.Phrase
	case models.SlotEvening:
		return d.Evening
	}
	return ""
}

// Day returns the content for a course day. ok is false for any day
// outside [1,7]; the lookup never panics and touches no I/O.
func Day(day int) (DayContent, bool) {
	if day < 1 || day > models.CourseLength {
		return DayContent{}, false
	}
	return days[day-1], true
}

func eveningOptions(day int, labels ...string) []Option {
	opts := make([]Option, 0, len(labels))
	for i, l := range labels {
		opts = append(opts, Option{Label: l, Token: fmt.Sprintf("ev:%d:%d", day, i+1)})
	}
	return opts
}

var days = [models.CourseLength]DayContent{
	{
		Day:      1,
		Title:    "День 1. Знакомство с собой",
		Morning:  "Доброе утро! Сегодня первый день курса заботы о себе. Начни день со стакана воды и трёх глубоких вдохов.",
		Exercise: "Практика дня: выпиши на бумагу три вещи, за которые ты благодарен(на) сегодня. Не спеши, дай себе пару минут.",
		Phrase:   "Фраза дня: «Я имею право заботиться о себе — это не эгоизм, а необходимость».",
		Evening:  "Вечерний итог: получилось ли сегодня выделить время для себя? Напиши пару слов о том, как прошёл день.",
	},
	{
		Day:      2,
		Title:    "День 2. Тело",
		Morning:  "Доброе утро! Сегодня слушаем тело. Потянись прямо сейчас — медленно, с удовольствием.",
		Exercise: "Практика дня: 10-минутная прогулка без телефона. Обрати внимание на пять звуков вокруг.",
		Phrase:   "Фраза дня: «Моё тело — мой дом, и я отношусь к нему бережно».",
		Evening:  "Вечерний итог: что тело просило сегодня — отдых, движение, еду, сон? Удалось ли это дать?",
	},
	{
		Day:      3,
		Title:    "День 3. Эмоции",
		Morning:  "Доброе утро! День наблюдения за эмоциями. Прямо сейчас назови про себя, что ты чувствуешь.",
		Exercise: "Практика дня: в течение дня трижды остановись и запиши одним словом свою эмоцию. Без оценок — просто назови.",
		Phrase:   "Фраза дня: «Любая моя эмоция имеет право на существование».",
		Evening:  "Вечерний итог: какая эмоция была главной сегодня?",
		Options: eveningOptions(3,
			"Спокойствие", "Радость", "Тревога", "Усталость",
		),
	},
	{
		Day:      4,
		Title:    "День 4. Границы",
		Morning:  "Доброе утро! Сегодня учимся говорить «нет». Маленькое «нет» чужому — это большое «да» себе.",
		Exercise: "Практика дня: откажись сегодня от одного дела, которое ты делаешь только из чувства долга.",
		Phrase:   "Фраза дня: «Я могу отказать и остаться хорошим человеком».",
		Evening:  "Вечерний итог: удалось ли сегодня отстоять свою границу? Напиши, как это было.",
	},
	{
		Day:      5,
		Title:    "День 5. Отдых",
		Morning:  "Доброе утро! Сегодня день отдыха без чувства вины. Отдых — это не награда, а базовая потребность.",
		Exercise: "Практика дня: запланируй 30 минут на то, что наполняет именно тебя. Поставь их в календарь как встречу.",
		Phrase:   "Фраза дня: «Отдыхать — нормально. Мне не нужно это заслуживать».",
		Evening:  "Вечерний итог: что сегодня помогло восстановиться лучше всего?",
		Options: eveningOptions(5,
			"Сон и тишина", "Движение", "Общение", "Хобби",
		),
	},
	{
		Day:      6,
		Title:    "День 6. Поддержка",
		Morning:  "Доброе утро! Сегодня про опору на других. Просить о помощи — признак силы, а не слабости.",
		Exercise: "Практика дня: напиши или позвони человеку, рядом с которым тебе спокойно. Просто так, без повода.",
		Phrase:   "Фраза дня: «Я не обязан(а) справляться со всем в одиночку».",
		Evening:  "Вечерний итог: кто сегодня был твоей опорой? А для кого опорой был(а) ты?",
	},
	{
		Day:      7,
		Title:    "День 7. Итоги недели",
		Morning:  "Доброе утро! Последний день курса. Вспомни, с чего ты начинал(а) неделю назад.",
		Exercise: "Практика дня: перечитай свои записи за неделю и выбери одну привычку, которую оставишь с собой.",
		Phrase:   "Фраза дня: «Забота о себе — это привычка, и я уже начал(а) её строить».",
		Evening:  "Вечерний итог недели: что изменилось за эти семь дней?",
		Options: eveningOptions(7,
			"Стал(а) спокойнее", "Лучше слышу себя", "Появились новые привычки", "Пока сложно сказать",
		),
	},
}
