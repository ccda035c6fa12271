package http

import (
	"net/http"

	"tirelire/internal/core"
	"tirelire/internal/middleware/identity"
)

type analyticsResponse struct {
	MonthlyData      []core.MonthlyPoint  `json:"monthlyData"`
	CategoryExpenses []core.CategoryShare `json:"categoryExpenses"`
	Stats            core.SummaryStats    `json:"stats"`
	Insights         []core.Insight       `json:"insights"`
	Period           string               `json:"period"`
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = core.PeriodSixMonths
	}
	from, to := s.analytics.ResolvePeriod(period)

	monthly, err := s.analytics.MonthlySeries(r.Context(), userID, from, to)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	breakdown, err := s.analytics.CategoryExpenseBreakdown(r.Context(), userID, from, to)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	stats, err := s.analytics.SummaryStats(r.Context(), userID, from, to)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	insights, err := s.insights.Generate(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	if monthly == nil {
		monthly = []core.MonthlyPoint{}
	}
	if breakdown == nil {
		breakdown = []core.CategoryShare{}
	}
	if insights == nil {
		insights = []core.Insight{}
	}

	respondData(w, http.StatusOK, analyticsResponse{
		MonthlyData:      monthly,
		CategoryExpenses: breakdown,
		Stats:            stats,
		Insights:         insights,
		Period:           period,
	})
}
