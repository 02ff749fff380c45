package http

import (
	"net/http"

	"vantage/internal/core"
)

type addGoalRequest struct {
	Title    string  `json:"title"`
	Unit     string  `json:"unit"`
	Deadline string  `json:"deadline"`
	Target   float64 `json:"target"`
	Current  float64 `json:"current"`
}

type advanceGoalRequest struct {
	Amount float64 `json:"amount"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if goals == nil {
		goals = []core.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var req addGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := s.goals.Add(r.Context(), req.Title, req.Unit, req.Deadline, req.Target, req.Current)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleAdvanceGoal(w http.ResponseWriter, r *http.Request) {
	var req advanceGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := s.goals.Advance(r.Context(), r.PathValue("id"), req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
