package http

import (
	"net/http"
	"time"
)

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	params := ParseMonthParams(r.URL.Query(), time.Now())

	report, err := s.reports.Monthly(r.Context(), params.Year, params.Month)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
