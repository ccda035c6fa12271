package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"tirelire/internal/core"
	"tirelire/internal/storage"
)

// AnalyticsService derives time-series and distribution views over a date
// window. It never mutates state and always recomputes from the ledger.
type AnalyticsService struct {
	storage *storage.Repository
}

func NewAnalyticsService(storage *storage.Repository) *AnalyticsService {
	return &AnalyticsService{storage: storage}
}

// ResolvePeriod turns a coarse period token into an explicit window ending
// today. Unrecognized tokens resolve to the six-month default.
func (s *AnalyticsService) ResolvePeriod(token string) (from, to core.Date) {
	return core.PeriodRange(token, core.DateOf(time.Now()))
}

func (s *AnalyticsService) MonthlySeries(ctx context.Context, userID int64, from, to core.Date) ([]core.MonthlyPoint, error) {
	if err := core.ValidateRange(from, to); err != nil {
		return nil, err
	}
	points, err := s.storage.MonthlyTotals(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly series: %w", err)
	}
	return points, nil
}

// CategoryExpenseBreakdown returns per-category expense totals with their
// share of the window total, rounded to one decimal. A window with no
// expenses yields zero percentages instead of dividing by zero.
func (s *AnalyticsService) CategoryExpenseBreakdown(ctx context.Context, userID int64, from, to core.Date) ([]core.CategoryShare, error) {
	if err := core.ValidateRange(from, to); err != nil {
		return nil, err
	}
	shares, err := s.storage.ExpenseTotalsByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}

	var total int64
	for _, share := range shares {
		total += share.Amount
	}
	if total == 0 {
		return shares, nil
	}
	for i := range shares {
		pct := float64(shares[i].Amount) / float64(total) * 100
		shares[i].Percentage = math.Round(pct*10) / 10
	}
	return shares, nil
}

func (s *AnalyticsService) SummaryStats(ctx context.Context, userID int64, from, to core.Date) (core.SummaryStats, error) {
	if err := core.ValidateRange(from, to); err != nil {
		return core.SummaryStats{}, err
	}
	totalIncome, totalExpense, incomeCount, expenseCount, err := s.storage.WindowTotals(ctx, userID, from, to)
	if err != nil {
		return core.SummaryStats{}, fmt.Errorf("summary stats: %w", err)
	}

	return core.SummaryStats{
		AvgIncome:    roundedAverage(totalIncome, incomeCount),
		AvgExpense:   roundedAverage(totalExpense, expenseCount),
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
	}, nil
}

// MonthExpenseTotal sums the expenses of the calendar month containing day.
func (s *AnalyticsService) MonthExpenseTotal(ctx context.Context, userID int64, day core.Date) (int64, error) {
	from := core.NewDate(day.Year(), int(day.Month()), 1)
	to := core.DateOf(from.AddDate(0, 1, -1))
	return s.storage.ExpenseTotal(ctx, userID, from, to)
}

// roundedAverage divides to the nearest minor unit; an empty population
// averages to zero.
func roundedAverage(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return (total + count/2) / count
}
