package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"selfcare-course-bot/internal/config"
	"selfcare-course-bot/internal/content"
	"selfcare-course-bot/internal/handlers"
	"selfcare-course-bot/internal/scheduler"
	"selfcare-course-bot/internal/storage"
	"selfcare-course-bot/internal/web"
)

func main() {
	_ = godotenv.Load() // TELEGRAM_BOT_TOKEN etc.

	// Таймзона курса нужна и логгеру, поэтому берём её до конфига.
	loc, err := time.LoadLocation(envOr("COURSE_TZ", "Europe/Moscow"))
	if err != nil {
		loc = time.UTC
	}
	initLogger(loc)
	defer zap.S().Sync()

	cfg, err := config.Load()
	if err != nil {
		zap.S().Fatalw("load config", "error", err)
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		zap.S().Fatalw("open storage", "error", err)
	}
	defer db.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		zap.S().Fatalw("create bot", "error", err)
	}
	zap.S().Infow("bot authorized", "username", bot.Self.UserName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := scheduler.NewEngine(
		db,
		&handlers.Sender{Bot: bot},
		content.Day,
		cfg.Location,
		time.Duration(cfg.ActiveWindowDays)*24*time.Hour,
	)

	sched, err := scheduler.Start(ctx, engine, cfg.SlotTimes)
	if err != nil {
		zap.S().Fatalw("start scheduler", "error", err)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: (&web.Server{DB: db, Cfg: cfg}).Router(),
	}
	go func() {
		zap.S().Infow("dashboard listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Errorw("dashboard server", "error", err)
		}
	}()

	h := &handlers.Handler{Bot: bot, DB: db, Engine: engine, Cfg: cfg}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := bot.GetUpdatesChan(updateConfig)

	go func() {
		for upd := range updates {
			h.HandleUpdate(upd)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zap.S().Info("shutting down")
	bot.StopReceivingUpdates()
	if err := sched.Shutdown(); err != nil {
		zap.S().Errorw("stop scheduler", "error", err)
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

func initLogger(loc *time.Location) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format("2006-01-02T15:04:05-07:00"))
	}

	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
