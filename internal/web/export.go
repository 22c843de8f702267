package web

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func csvWriter(w http.ResponseWriter, filename string) *csv.Writer {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return csv.NewWriter(w)
}

func unix(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

func (s *Server) handleExportUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.DB.ListUsers(r.Context())
	if err != nil {
		s.internalError(w, "export users", err)
		return
	}

	cw := csvWriter(w, "users.csv")
	_ = cw.Write([]string{"chat_id", "username", "current_day", "paused", "course_completed", "notifications", "last_active_at", "created_at"})
	for _, u := range users {
		_ = cw.Write([]string{
			strconv.FormatInt(u.ChatID, 10),
			u.Username,
			strconv.Itoa(u.CurrentDay),
			strconv.FormatBool(u.Paused),
			strconv.FormatBool(u.CourseCompleted),
			strconv.FormatBool(u.Notifications),
			unix(u.LastActiveAt),
			unix(u.CreatedAt),
		})
	}
	cw.Flush()
}

func (s *Server) handleExportResponses(w http.ResponseWriter, r *http.Request) {
	responses, err := s.DB.ListResponses(r.Context(), 0)
	if err != nil {
		s.internalError(w, "export responses", err)
		return
	}

	cw := csvWriter(w, "responses.csv")
	_ = cw.Write([]string{"chat_id", "day", "kind", "text", "created_at"})
	for _, resp := range responses {
		_ = cw.Write([]string{
			strconv.FormatInt(resp.ChatID, 10),
			strconv.Itoa(resp.Day),
			resp.Kind,
			resp.Text,
			unix(resp.CreatedAt),
		})
	}
	cw.Flush()
}

func (s *Server) handleExportAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.DB.ListAlerts(r.Context())
	if err != nil {
		s.internalError(w, "export alerts", err)
		return
	}

	cw := csvWriter(w, "alerts.csv")
	_ = cw.Write([]string{"id", "chat_id", "keyword", "message", "handled", "created_at"})
	for _, a := range alerts {
		_ = cw.Write([]string{
			strconv.FormatInt(a.ID, 10),
			strconv.FormatInt(a.ChatID, 10),
			a.Keyword,
			a.Message,
			strconv.FormatBool(a.Handled),
			unix(a.CreatedAt),
		})
	}
	cw.Flush()
}

func (s *Server) handleAlertHandled(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad alert id", http.StatusBadRequest)
		return
	}
	if err := s.DB.MarkAlertHandled(r.Context(), id); err != nil {
		s.internalError(w, "mark alert handled", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
