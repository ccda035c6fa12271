package http

import (
	"net/http"
	"strconv"

	"tirelire/internal/core"
	"tirelire/internal/log"
	"tirelire/internal/middleware/identity"
)

type createTransactionRequest struct {
	AccountID   int64     `json:"accountId"`
	CategoryID  int64     `json:"categoryId"`
	Description string    `json:"description"`
	Amount      amount    `json:"amount"`
	Date        core.Date `json:"date"`
	Notes       string    `json:"notes"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := core.TransactionFilter{
		CategoryName: q.Get("category"),
		Search:       q.Get("search"),
	}
	if v := q.Get("from"); v != "" {
		filter.From, err = core.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Date de début invalide")
			return
		}
	}
	if v := q.Get("to"); v != "" {
		filter.To, err = core.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Date de fin invalide")
			return
		}
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	transactions, err := s.ledger.ListTransactions(r.Context(), userID, filter, limit, offset)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	respondData(w, http.StatusOK, transactions)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	var req createTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	saved, err := s.ledger.RecordTransaction(r.Context(), core.Transaction{
		UserID:      userID,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      int64(req.Amount),
		Date:        req.Date,
		Notes:       req.Notes,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Transaction recorded",
		log.FieldTransactionID, saved.ID,
		log.FieldAccountID, saved.AccountID,
		log.FieldAmount, saved.Amount)
	respondMessage(w, http.StatusCreated, "Transaction ajoutée avec succès", saved)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tx, err := s.ledger.GetTransaction(r.Context(), userID, id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), userID, id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Transaction supprimée", nil)
}

// pathID parses the {id} path segment; zero and negatives are rejected.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Identifiant invalide")
		return 0, false
	}
	return id, true
}
