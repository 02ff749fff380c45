package http

import (
	"net/http"

	"vantage/internal/core"
)

type addLeadRequest struct {
	Name    string  `json:"name"`
	Company string  `json:"company"`
	Phone   string  `json:"phone"`
	Value   float64 `json:"value"`
}

type moveLeadRequest struct {
	Status string `json:"status"`
}

type leadNotesRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	status := core.LeadStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown pipeline status")
		return
	}

	leads, err := s.leads.List(r.Context(), status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if leads == nil {
		leads = []core.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

func (s *Server) handleAddLead(w http.ResponseWriter, r *http.Request) {
	var req addLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lead, err := s.leads.Add(r.Context(), req.Name, req.Company, req.Phone, req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (s *Server) handleMoveLead(w http.ResponseWriter, r *http.Request) {
	var req moveLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lead, err := s.leads.Move(r.Context(), r.PathValue("id"), core.LeadStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleToggleLeadPayment(w http.ResponseWriter, r *http.Request) {
	state, err := s.leads.TogglePayment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]core.PaymentState{"payment": state})
}

func (s *Server) handleSetLeadNotes(w http.ResponseWriter, r *http.Request) {
	var req leadNotesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.leads.SetNotes(r.Context(), r.PathValue("id"), req.Notes); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := s.leads.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
