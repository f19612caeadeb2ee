// Package summary aggregates spending by category over a date range.
package summary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"nestegg/internal/models"
)

// The window defaults to the trailing 90 days, matching the sync window.
const defaultWindowDays = 90

// Transfers between the user's own accounts and card payments would double
// count real spending, so they are excluded from totals and the breakdown.
var excludedCategories = map[string]bool{
	"Transfer":            true,
	"Payment":             true,
	"Credit Card Payment": true,
}

// CategorySpend is one row of the per-category breakdown
type CategorySpend struct {
	Category         string  `json:"category"`
	Amount           float64 `json:"amount"`
	TransactionCount int     `json:"transactionCount"`
}

// Summary holds aggregated cash-flow figures for one user and range
type Summary struct {
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	TotalSpent     float64         `json:"totalSpent"`
	TotalIncome    float64         `json:"totalIncome"`
	NetCashFlow    float64         `json:"netCashFlow"`
	MonthlyAverage float64         `json:"monthlyAverage"`
	ByCategory     []CategorySpend `json:"byCategory"`
}

// Service computes spending summaries from the local ledger
type Service struct {
	transactionRepo models.TransactionRepository
}

// NewService creates a new summary service
func NewService(transactionRepo models.TransactionRepository) *Service {
	return &Service{transactionRepo: transactionRepo}
}

// Summarize aggregates the user's settled transactions in [start, end]. A zero
// range defaults to the trailing 90 days. Pending rows and excluded categories
// never reach the totals. Amounts accumulate exactly and are rounded to cents
// once, at the end.
func (s *Service) Summarize(ctx context.Context, userID int64, start, end time.Time) (*Summary, error) {
	if start.IsZero() && end.IsZero() {
		end = time.Now()
		start = end.AddDate(0, 0, -defaultWindowDays)
	}

	txns, err := s.transactionRepo.ListInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	type bucket struct {
		amount decimal.Decimal
		count  int
	}

	spent := decimal.Zero
	income := decimal.Zero
	buckets := make(map[string]*bucket)

	for _, txn := range txns {
		if txn.Pending {
			continue
		}
		if excludedCategories[txn.CategoryPrimary] {
			continue
		}

		amount := decimal.NewFromFloat(txn.Amount)
		if amount.IsNegative() {
			outflow := amount.Abs()
			spent = spent.Add(outflow)

			b := buckets[txn.CategoryPrimary]
			if b == nil {
				b = &bucket{}
				buckets[txn.CategoryPrimary] = b
			}
			b.amount = b.amount.Add(outflow)
			b.count++
		} else if amount.IsPositive() {
			income = income.Add(amount)
		}
	}

	byCategory := make([]CategorySpend, 0, len(buckets))
	for category, b := range buckets {
		byCategory = append(byCategory, CategorySpend{
			Category:         category,
			Amount:           b.amount.Round(2).InexactFloat64(),
			TransactionCount: b.count,
		})
	}
	sort.Slice(byCategory, func(i, j int) bool {
		if byCategory[i].Amount != byCategory[j].Amount {
			return byCategory[i].Amount > byCategory[j].Amount
		}
		return byCategory[i].Category < byCategory[j].Category
	})

	three := decimal.NewFromInt(3)

	return &Summary{
		StartDate:      start,
		EndDate:        end,
		TotalSpent:     spent.Round(2).InexactFloat64(),
		TotalIncome:    income.Round(2).InexactFloat64(),
		NetCashFlow:    income.Sub(spent).Round(2).InexactFloat64(),
		MonthlyAverage: spent.Div(three).Round(2).InexactFloat64(),
		ByCategory:     byCategory,
	}, nil
}
