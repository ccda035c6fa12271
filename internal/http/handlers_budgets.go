package http

import (
	"net/http"

	"tirelire/internal/core"
	"tirelire/internal/middleware/identity"
)

type budgetRequest struct {
	CategoryID int64           `json:"categoryId"`
	Amount     amount          `json:"amount"`
	Period     core.PeriodKind `json:"period"`
	StartDate  core.Date       `json:"startDate"`
	EndDate    core.Date       `json:"endDate"`
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	statuses, err := s.budgets.EvaluateBudgets(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if statuses == nil {
		statuses = []core.BudgetStatus{}
	}
	respondData(w, http.StatusOK, statuses)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	var req budgetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	budget, err := s.budgets.CreateBudget(r.Context(), core.Budget{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     int64(req.Amount),
		Period:     req.Period,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Budget créé avec succès", budget)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req budgetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err = s.budgets.UpdateBudget(r.Context(), core.Budget{
		ID:         id,
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     int64(req.Amount),
		Period:     req.Period,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Budget mis à jour", nil)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.budgets.DeleteBudget(r.Context(), userID, id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Budget supprimé", nil)
}
