package http

import (
	"net/http"

	"tirelire/internal/core"
	"tirelire/internal/middleware/identity"
)

type goalRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TargetAmount  amount    `json:"targetAmount"`
	CurrentAmount amount    `json:"currentAmount"`
	Deadline      core.Date `json:"deadline"`
	Category      string    `json:"category"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	goals, err := s.goals.ListGoals(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if goals == nil {
		goals = []core.Goal{}
	}
	respondData(w, http.StatusOK, goals)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := s.goals.CreateGoal(r.Context(), core.Goal{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  int64(req.TargetAmount),
		CurrentAmount: int64(req.CurrentAmount),
		Deadline:      req.Deadline,
		Category:      req.Category,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Objectif créé avec succès", goal)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err = s.goals.UpdateGoal(r.Context(), core.Goal{
		ID:            id,
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  int64(req.TargetAmount),
		CurrentAmount: int64(req.CurrentAmount),
		Deadline:      req.Deadline,
		Category:      req.Category,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Objectif mis à jour", nil)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.goals.DeleteGoal(r.Context(), userID, id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Objectif supprimé", nil)
}
