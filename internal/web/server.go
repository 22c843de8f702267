package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"selfcare-course-bot/internal/config"
	"selfcare-course-bot/internal/models"
	"selfcare-course-bot/internal/storage"
)

// Server is the authenticated admin dashboard: stats, CSV exports and
// alert handling. It only reads what the bot persists; course logic
// never lives here.
type Server struct {
	DB  *storage.Storage
	Cfg *config.Config
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	corsHandler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	r.Use(corsHandler.Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.BasicAuth("dashboard", map[string]string{
			s.Cfg.DashboardUser: s.Cfg.DashboardPass,
		}))

		r.Get("/", s.handleDashboard)
		r.Get("/export/users.csv", s.handleExportUsers)
		r.Get("/export/responses.csv", s.handleExportResponses)
		r.Get("/export/alerts.csv", s.handleExportAlerts)
		r.Post("/alerts/{id}/handle", s.handleAlertHandled)
	})

	return r
}

func (s *Server) activeCutoff() int64 {
	return time.Now().AddDate(0, 0, -s.Cfg.ActiveWindowDays).Unix()
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	zap.S().Errorw(op, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

type dashboardData struct {
	Stats     *storage.Stats
	Days      []int
	Alerts    []models.Alert
	Responses []models.Response
	Now       string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.DB.Stats(ctx, s.activeCutoff())
	if err != nil {
		s.internalError(w, "dashboard stats", err)
		return
	}
	alerts, err := s.DB.ListAlerts(ctx)
	if err != nil {
		s.internalError(w, "dashboard alerts", err)
		return
	}
	responses, err := s.DB.ListResponses(ctx, 20)
	if err != nil {
		s.internalError(w, "dashboard responses", err)
		return
	}

	days := make([]int, models.CourseLength)
	for i := range days {
		days[i] = i + 1
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = dashboardTmpl.Execute(w, dashboardData{
		Stats:     stats,
		Days:      days,
		Alerts:    alerts,
		Responses: responses,
		Now:       time.Now().In(s.Cfg.Location).Format("2006-01-02 15:04"),
	})
	if err != nil {
		zap.S().Errorw("render dashboard", "error", err)
	}
}

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"unixTime": func(ts int64) string {
		if ts == 0 {
			return "—"
		}
		return time.Unix(ts, 0).Format("2006-01-02 15:04")
	},
	"dayCount": func(st *storage.Stats, day int) int {
		return st.UsersByDay[day-1]
	},
}).Parse(`<!doctype html>
<html lang="ru">
<head><meta charset="utf-8"><title>Курс заботы о себе — статистика</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
td, th { border: 1px solid #ccc; padding: 4px 10px; }
.alert { background: #fff3f3; }
</style></head>
<body>
<h1>Статистика курса</h1>
<p>Обновлено: {{.Now}}</p>

<table>
<tr><th>Всего участников</th><td>{{.Stats.TotalUsers}}</td></tr>
<tr><th>Активных</th><td>{{.Stats.ActiveUsers}}</td></tr>
<tr><th>На паузе</th><td>{{.Stats.PausedUsers}}</td></tr>
<tr><th>Завершили курс</th><td>{{.Stats.CompletedUsers}}</td></tr>
<tr><th>Ответов</th><td>{{.Stats.TotalResponses}}</td></tr>
<tr><th>Неразобранных алертов</th><td>{{.Stats.UnhandledAlerts}}</td></tr>
</table>

<h2>Участники по дням</h2>
<table><tr>{{range .Days}}<th>День {{.}}</th>{{end}}</tr>
<tr>{{range .Days}}<td>{{dayCount $.Stats .}}</td>{{end}}</tr></table>

<h2>Алерты</h2>
<table><tr><th>Когда</th><th>Чат</th><th>Слово</th><th>Сообщение</th><th></th></tr>
{{range .Alerts}}<tr{{if not .Handled}} class="alert"{{end}}>
<td>{{unixTime .CreatedAt}}</td><td>{{.ChatID}}</td><td>{{.Keyword}}</td><td>{{.Message}}</td>
<td>{{if .Handled}}разобран{{else}}<form method="post" action="/alerts/{{.ID}}/handle"><button>разобрать</button></form>{{end}}</td>
</tr>{{end}}</table>

<h2>Последние ответы</h2>
<table><tr><th>Когда</th><th>Чат</th><th>День</th><th>Тип</th><th>Текст</th></tr>
{{range .Responses}}<tr>
<td>{{unixTime .CreatedAt}}</td><td>{{.ChatID}}</td><td>{{.Day}}</td><td>{{.Kind}}</td><td>{{.Text}}</td>
</tr>{{end}}</table>

<p>
<a href="/export/users.csv">users.csv</a> ·
<a href="/export/responses.csv">responses.csv</a> ·
<a href="/export/alerts.csv">alerts.csv</a>
</p>
</body></html>`))
