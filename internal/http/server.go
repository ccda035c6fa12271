package http

import (
	"context"
	"net/http"
	"sync"

	"tirelire/internal/log"
	"tirelire/internal/middleware/identity"
	"tirelire/internal/middleware/ratelimit"
	"tirelire/internal/middleware/security"
	"tirelire/internal/middleware/trace"
	"tirelire/internal/services"
)

type Server struct {
	http.Server

	ledger    *services.LedgerService
	analytics *services.AnalyticsService
	budgets   *services.BudgetService
	goals     *services.GoalService
	insights  *services.InsightService

	limiter      *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer wires routes and the middleware chain, returning a
// ready-to-run server. All /api routes sit behind the identity check.
func NewServer(
	addr string,
	ledger *services.LedgerService,
	analytics *services.AnalyticsService,
	budgets *services.BudgetService,
	goals *services.GoalService,
	insights *services.InsightService,
	users identity.UserChecker,
	requestsPerMinute int,
) *Server {
	s := &Server{
		ledger:    ledger,
		analytics: analytics,
		budgets:   budgets,
		goals:     goals,
		insights:  insights,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: requestsPerMinute,
		}),
	}

	detector := security.NewDetector()
	traced := trace.NewMiddleware(detector.ExtractClientIP)
	rateLimited := s.limiter.Middleware(detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		respondError(w, http.StatusTooManyRequests, "Trop de requêtes, réessayez plus tard")
	})
	identified := identity.Middleware(users, func(w http.ResponseWriter, status int, msg string) {
		respondError(w, status, msg)
	})

	api := http.NewServeMux()
	api.HandleFunc("GET /api/accounts", s.handleListAccounts)
	api.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	api.HandleFunc("GET /api/transactions", s.handleListTransactions)
	api.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	api.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	api.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	api.HandleFunc("GET /api/budgets", s.handleListBudgets)
	api.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	api.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	api.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	api.HandleFunc("GET /api/goals", s.handleListGoals)
	api.HandleFunc("POST /api/goals", s.handleCreateGoal)
	api.HandleFunc("PUT /api/goals/{id}", s.handleUpdateGoal)
	api.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	api.HandleFunc("GET /api/analytics", s.handleAnalytics)
	api.HandleFunc("GET /api/dashboard", s.handleDashboard)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	// The category registry is global and read-only, so it stays outside
	// the identity wall.
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.Handle("/api/", identified(api))

	logged := log.Middleware(log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP))

	s.Server = http.Server{
		Addr:    addr,
		Handler: traced.Middleware(logged(security.HeadersMiddleware(rateLimited(mux)))),
	}
	return s
}

// Shutdown stops the listener and the limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
