package http

import (
	"net/http"

	"tirelire/internal/core"
	"tirelire/internal/middleware/identity"
)

type createAccountRequest struct {
	Name    string           `json:"name"`
	Bank    string           `json:"bank"`
	Type    core.AccountType `json:"type"`
	Balance amount           `json:"balance"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	accounts, err := s.ledger.ListAccounts(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if accounts == nil {
		accounts = []core.Account{}
	}
	respondData(w, http.StatusOK, accounts)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	var req createAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := s.ledger.CreateAccount(r.Context(), core.Account{
		UserID:  userID,
		Name:    req.Name,
		Bank:    req.Bank,
		Type:    req.Type,
		Balance: int64(req.Balance),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Compte créé avec succès", account)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	kind := core.CategoryKind(r.URL.Query().Get("type"))

	categories, err := s.ledger.ListCategories(r.Context(), kind)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if categories == nil {
		categories = []core.Category{}
	}
	respondData(w, http.StatusOK, categories)
}
