package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tirelire/internal/core"
)

// envelope mirrors the response shape clients already consume: data rides
// under "success", failures carry a single "error" string.
type envelope struct {
	Success bool   `json:"success,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondDomainError maps the error taxonomy onto HTTP statuses. Storage
// internals never leak to the client.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, "Ressource non trouvée")
	case errors.Is(err, core.ErrInvalidAmount):
		respondError(w, http.StatusUnprocessableEntity, "Montant invalide")
	case errors.Is(err, core.ErrInvalidRange):
		respondError(w, http.StatusUnprocessableEntity, "Période invalide")
	case errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrEmptyTitle),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidPeriod):
		respondError(w, http.StatusUnprocessableEntity, "Données invalides: "+err.Error())
	case errors.Is(err, core.ErrMissingUser):
		respondError(w, http.StatusUnauthorized, "Utilisateur non identifié")
	default:
		slog.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "Erreur interne")
	}
}

// amount decodes a money value from either a JSON number or a quoted
// string, rejecting fractions of a franc.
type amount int64

func (a *amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	n, err := core.ParseAmount(s)
	if err != nil {
		return err
	}
	*a = amount(n)
	return nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			respondError(w, http.StatusUnprocessableEntity, "Montant invalide")
			return false
		}
		respondError(w, http.StatusBadRequest, "Format de requête invalide")
		return false
	}
	return true
}
