// Package http exposes the dashboard's data and operations as a small local
// JSON API: one handler group per view (auth, tasks, leads, goals, finance,
// reports).
package http

import (
	"log/slog"
	"net/http"
	"time"

	applog "vantage/internal/log"
	"vantage/internal/services"
	"vantage/internal/session"
)

type Server struct {
	http.Server

	sessions *session.Manager
	tasks    *services.TaskService
	leads    *services.LeadService
	goals    *services.GoalService
	finance  *services.FinanceService
	reports  *services.ReportService
	logger   *slog.Logger
}

// Deps bundles everything the handlers need.
type Deps struct {
	Sessions *session.Manager
	Tasks    *services.TaskService
	Leads    *services.LeadService
	Goals    *services.GoalService
	Finance  *services.FinanceService
	Reports  *services.ReportService
	Logger   *slog.Logger
}

func NewServer(addr string, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	s := &Server{
		sessions: deps.Sessions,
		tasks:    deps.Tasks,
		leads:    deps.Leads,
		goals:    deps.Goals,
		finance:  deps.Finance,
		reports:  deps.Reports,
		logger:   deps.Logger.With(applog.FieldComponent, applog.ComponentHTTP),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/session", s.handleSession)

	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleAddTask)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.handleToggleTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)

	mux.HandleFunc("GET /api/leads", s.handleListLeads)
	mux.HandleFunc("POST /api/leads", s.handleAddLead)
	mux.HandleFunc("POST /api/leads/{id}/move", s.handleMoveLead)
	mux.HandleFunc("POST /api/leads/{id}/payment", s.handleToggleLeadPayment)
	mux.HandleFunc("POST /api/leads/{id}/notes", s.handleSetLeadNotes)
	mux.HandleFunc("DELETE /api/leads/{id}", s.handleDeleteLead)

	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleAddGoal)
	mux.HandleFunc("POST /api/goals/{id}/advance", s.handleAdvanceGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)

	mux.HandleFunc("GET /api/finance", s.handleFinanceOverview)
	mux.HandleFunc("PUT /api/finance", s.handleUpdateFinance)

	mux.HandleFunc("GET /api/reports", s.handleMonthlyReport)

	s.Addr = addr
	s.Handler = withSecurityHeaders(s.withRequestLog(mux))

	// Local single-user API; conservative limits are plenty.
	s.ReadTimeout = 10 * time.Second
	s.WriteTimeout = 10 * time.Second
	s.IdleTimeout = 60 * time.Second
	s.MaxHeaderBytes = 1 << 16

	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withRequestLog logs every request with its status and duration.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestID()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		rec.Header().Set("X-Request-ID", id)

		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= 500 {
			level = slog.LevelError
		} else if rec.status >= 400 {
			level = slog.LevelWarn
		}
		s.logger.Log(r.Context(), level, "HTTP request",
			applog.FieldRequestID, id,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rec.status,
			applog.FieldDuration, time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
