package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selfcare-course-bot/internal/models"
)

func setFullEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_CHAT_ID", "42")
	t.Setenv("CRISIS_KEYWORDS", "плохо, Не могу больше ,help")
	t.Setenv("ACTIVE_WINDOW_DAYS", "30")
	t.Setenv("COURSE_TZ", "Europe/Moscow")
	t.Setenv("SLOT_MORNING", "09:00")
	t.Setenv("SLOT_EXERCISE", "12:00")
	t.Setenv("SLOT_PHRASE", "16:00")
	t.Setenv("SLOT_EVENING", "20:00")
	t.Setenv("DASHBOARD_USER", "admin")
	t.Setenv("DASHBOARD_PASS", "secret")
}

func TestLoad(t *testing.T) {
	setFullEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, int64(42), cfg.AdminChatID)
	assert.Equal(t, []string{"плохо", "не могу больше", "help"}, cfg.CrisisKeywords)
	assert.Equal(t, 30, cfg.ActiveWindowDays)
	assert.Equal(t, "Europe/Moscow", cfg.Location.String())
	assert.Equal(t, "20:00", cfg.SlotTimes[models.SlotEvening])
	assert.Equal(t, "bot.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoadRequiredValues(t *testing.T) {
	breakages := map[string][2]string{
		"missing token":      {"TELEGRAM_BOT_TOKEN", ""},
		"missing admin chat": {"ADMIN_CHAT_ID", ""},
		"empty keywords":     {"CRISIS_KEYWORDS", " , ,"},
		"bad window":         {"ACTIVE_WINDOW_DAYS", "-5"},
		"bad slot time":      {"SLOT_EVENING", "25:99"},
		"missing slot time":  {"SLOT_MORNING", ""},
		"bad timezone":       {"COURSE_TZ", "Mars/Olympus"},
		"missing dashboard":  {"DASHBOARD_PASS", ""},
		"non-numeric admin":  {"ADMIN_CHAT_ID", "chat"},
	}

	for name, kv := range breakages {
		t.Run(name, func(t *testing.T) {
			setFullEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestTodayFormat(t *testing.T) {
	setFullEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, cfg.Today())
}
