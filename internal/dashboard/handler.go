package dashboard

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/learnlynk/followup-tasks/internal/model"
	"github.com/learnlynk/followup-tasks/internal/repo"
	"github.com/learnlynk/followup-tasks/pkg/respond"
)

//go:embed templates
var templates embed.FS

var todayTmpl = template.Must(template.New("today.html").Funcs(template.FuncMap{
	// Display-only; the stored value is untouched.
	"capitalize": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"localTime": func(t time.Time) string {
		return t.Local().Format("3:04:05 PM")
	},
}).ParseFS(templates, "templates/today.html"))

// Handler serves the today page and its complete action.
type Handler struct {
	tasks  repo.TaskRepository
	logger *zap.Logger
}

func NewHandler(tasks repo.TaskRepository, logger *zap.Logger) *Handler {
	return &Handler{tasks: tasks, logger: logger}
}

type todayPage struct {
	Tasks []model.Task
	Err   string
}

// Today renders the dashboard with the tasks due in the current local day.
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	view := NewTodayView(h.tasks, h.logger)
	view.Load(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := todayPage{Tasks: view.Tasks(), Err: view.Err()}
	if err := todayTmpl.Execute(w, page); err != nil {
		h.logger.Error("failed to render today page", zap.Error(err))
	}
}

// Complete backs the page's mark-complete button. The page removes the row
// itself on success and alerts on failure, so the body is a bare outcome.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.tasks.Complete(r.Context(), id); err != nil {
		h.logger.Error("failed to complete task", zap.String("task_id", id), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to update task")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Routes mounts the dashboard surface on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/today", h.Today)
	r.Post("/tasks/{id}/complete", h.Complete)
}
