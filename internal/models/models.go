package models

// CourseLength is the number of days in the course.
const CourseLength = 7

// Slot is one of the four fixed daily message types.
type Slot string

const (
	SlotMorning  Slot = "morning"
	SlotExercise Slot = "exercise"
	SlotPhrase   Slot = "phrase"
	SlotEvening  Slot = "evening"
)

// Slots lists all slots in send order.
var Slots = []Slot{SlotMorning, SlotExercise, SlotPhrase, SlotEvening}

// User represents a course participant. Timestamps are unix seconds.
type User struct {
	ID              int64  `db:"id"`
	ChatID          int64  `db:"chat_id"`
	Username        string `db:"username"`
	CurrentDay      int    `db:"current_day"` // 1..7, never decreases while active
	Paused          bool   `db:"paused"`
	CourseCompleted bool   `db:"course_completed"` // terminal once true
	Notifications   bool   `db:"notifications"`
	LastActiveAt    int64  `db:"last_active_at"`
	CreatedAt       int64  `db:"created_at"`
}

// ReminderLog records a delivered slot. Unique per (chat_id, day, slot, sent_on);
// duplicate inserts are ignored, which is the at-most-once guarantee.
type ReminderLog struct {
	ID     int64  `db:"id"`
	ChatID int64  `db:"chat_id"`
	Day    int    `db:"day"`
	Slot   Slot   `db:"slot"`
	SentOn string `db:"sent_on"` // YYYY-MM-DD in the course timezone
	SentAt int64  `db:"sent_at"`
}

// DayProgress marks a fully delivered course day.
type DayProgress struct {
	ID          int64  `db:"id"`
	ChatID      int64  `db:"chat_id"`
	Day         int    `db:"day"`
	Completed   bool   `db:"completed"`
	CompletedAt int64  `db:"completed_at"`
	CompletedOn string `db:"completed_on"` // YYYY-MM-DD
}

// Response stores a free-text or button answer. Append-only.
type Response struct {
	ID        int64  `db:"id"`
	ChatID    int64  `db:"chat_id"`
	Day       int    `db:"day"`
	Kind      string `db:"kind"` // "free", "evening", "quiz"
	Text      string `db:"text"`
	CreatedAt int64  `db:"created_at"`
}

// Alert is created when a crisis keyword is detected in a response.
type Alert struct {
	ID        int64  `db:"id"`
	ChatID    int64  `db:"chat_id"`
	Keyword   string `db:"keyword"`
	Message   string `db:"message"`
	Handled   bool   `db:"handled"`
	CreatedAt int64  `db:"created_at"`
}
