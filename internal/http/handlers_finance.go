package http

import "net/http"

type updateFinanceRequest struct {
	Salary   float64 `json:"salary"`
	Expenses float64 `json:"expenses"`
}

func (s *Server) handleFinanceOverview(w http.ResponseWriter, r *http.Request) {
	out, err := s.finance.Overview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateFinance(w http.ResponseWriter, r *http.Request) {
	var req updateFinanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.finance.Update(r.Context(), req.Salary, req.Expenses)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
