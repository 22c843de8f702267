package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"selfcare-course-bot/internal/models"
)

const tokenSecretPath = "/run/secrets/telegram_bot_token"

// Config holds everything the process needs at startup. Missing required
// values are a startup failure, nothing here has a hidden fallback.
type Config struct {
	TelegramToken string
	AdminChatID   int64

	DBPath   string
	HTTPAddr string

	DashboardUser string
	DashboardPass string

	// CrisisKeywords are matched case-insensitively as substrings
	// against response text. Stored lowercased.
	CrisisKeywords []string

	// ActiveWindowDays bounds how stale a user may be and still
	// receive scheduled sends.
	ActiveWindowDays int

	// SlotTimes maps each slot to its local "HH:MM" trigger time.
	SlotTimes map[models.Slot]string

	Location *time.Location
}

// Load reads configuration from the environment. The bot token may also
// come from a Docker secret, which wins over the env var.
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken: botToken(),
		DBPath:        envDefault("DB_PATH", "bot.db"),
		HTTPAddr:      envDefault("HTTP_ADDR", ":8080"),
		DashboardUser: os.Getenv("DASHBOARD_USER"),
		DashboardPass: os.Getenv("DASHBOARD_PASS"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set (env or %s)", tokenSecretPath)
	}
	if cfg.DashboardUser == "" || cfg.DashboardPass == "" {
		return nil, fmt.Errorf("DASHBOARD_USER / DASHBOARD_PASS are not set")
	}

	adminID, err := strconv.ParseInt(os.Getenv("ADMIN_CHAT_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_CHAT_ID: %w", err)
	}
	cfg.AdminChatID = adminID

	cfg.CrisisKeywords = splitKeywords(os.Getenv("CRISIS_KEYWORDS"))
	if len(cfg.CrisisKeywords) == 0 {
		return nil, fmt.Errorf("CRISIS_KEYWORDS is empty")
	}

	days, err := strconv.Atoi(os.Getenv("ACTIVE_WINDOW_DAYS"))
	if err != nil || days <= 0 {
		return nil, fmt.Errorf("ACTIVE_WINDOW_DAYS must be a positive integer")
	}
	cfg.ActiveWindowDays = days

	tz := envDefault("COURSE_TZ", "Europe/Moscow")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("COURSE_TZ %q: %w", tz, err)
	}
	cfg.Location = loc

	cfg.SlotTimes = map[models.Slot]string{}
	for slot, envKey := range map[models.Slot]string{
		models.SlotMorning:  "SLOT_MORNING",
		models.SlotExercise: "SLOT_EXERCISE",
		models.SlotPhrase:   "SLOT_PHRASE",
		models.SlotEvening:  "SLOT_EVENING",
	} {
		hm := os.Getenv(envKey)
		if _, err := time.Parse("15:04", hm); err != nil {
			return nil, fmt.Errorf("%s %q: want HH:MM", envKey, hm)
		}
		cfg.SlotTimes[slot] = hm
	}

	return cfg, nil
}

// Today returns the current date key (YYYY-MM-DD) in the course timezone.
func (c *Config) Today() string {
	return time.Now().In(c.Location).Format("2006-01-02")
}

func botToken() string {
	if data, err := os.ReadFile(tokenSecretPath); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token
		}
	}
	return strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
}

func splitKeywords(raw string) []string {
	var res []string
	for _, kw := range strings.Split(raw, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			res = append(res, kw)
		}
	}
	return res
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
