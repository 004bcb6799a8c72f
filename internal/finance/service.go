package finance

import (
	"context"
	"fmt"
)

// Repository loads the point-in-time snapshots the engine computes over.
type Repository interface {
	SalesSnapshot(ctx context.Context) ([]Sale, error)
	ExpensesSnapshot(ctx context.Context) ([]Expense, error)
	MaterialsSnapshot(ctx context.Context) ([]Material, error)
	ProductsSnapshot(ctx context.Context) ([]ProductRef, error)
	CountActiveProducts(ctx context.Context) (int, error)
	CountLowStockMaterials(ctx context.Context, threshold float64) (int, error)
}

// Service coordinates snapshot loading, computation and the cache layer.
type Service struct {
	repo              Repository
	cache             *Cache
	lowStockThreshold float64
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache, lowStockThreshold float64) *Service {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	return &Service{repo: repo, cache: cache, lowStockThreshold: lowStockThreshold}
}

// Statement returns the full financial analysis, cached.
func (s *Service) Statement(ctx context.Context) (Statement, error) {
	key, err := s.cache.BuildKey(ctx, "finance", "statement")
	if err != nil {
		return Statement{}, err
	}
	var st Statement
	err = s.cache.FetchJSON(ctx, key, &st, func(ctx context.Context) (interface{}, error) {
		return s.buildStatement(ctx)
	})
	return st, err
}

func (s *Service) buildStatement(ctx context.Context) (Statement, error) {
	sales, err := s.repo.SalesSnapshot(ctx)
	if err != nil {
		return Statement{}, fmt.Errorf("finance: load sales: %w", err)
	}
	expenseItems, err := s.repo.ExpensesSnapshot(ctx)
	if err != nil {
		return Statement{}, fmt.Errorf("finance: load expenses: %w", err)
	}
	materials, err := s.repo.MaterialsSnapshot(ctx)
	if err != nil {
		return Statement{}, fmt.Errorf("finance: load materials: %w", err)
	}
	return Analyze(sales, expenseItems, materials), nil
}

// OperatingCosts returns the expense breakdown without caching; the
// underlying query is cheap.
func (s *Service) OperatingCosts(ctx context.Context) (OperatingCosts, error) {
	expenseItems, err := s.repo.ExpensesSnapshot(ctx)
	if err != nil {
		return OperatingCosts{}, fmt.Errorf("finance: load expenses: %w", err)
	}
	return ComputeOperatingCosts(expenseItems), nil
}

// Profitability returns the ranked per-product profitability, cached.
func (s *Service) Profitability(ctx context.Context) ([]ProductProfitability, error) {
	key, err := s.cache.BuildKey(ctx, "finance", "profitability")
	if err != nil {
		return nil, err
	}
	var ranking []ProductProfitability
	err = s.cache.FetchJSON(ctx, key, &ranking, func(ctx context.Context) (interface{}, error) {
		sales, err := s.repo.SalesSnapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("finance: load sales: %w", err)
		}
		products, err := s.repo.ProductsSnapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("finance: load products: %w", err)
		}
		return ProfitabilityByProduct(sales, products), nil
	})
	return ranking, err
}

// HealthReport classifies the current statement.
func (s *Service) HealthReport(ctx context.Context) (HealthReport, error) {
	st, err := s.Statement(ctx)
	if err != nil {
		return HealthReport{}, err
	}
	return Health(st), nil
}

// Dashboard assembles the landing-page summary.
func (s *Service) Dashboard(ctx context.Context) (DashboardSummary, error) {
	st, err := s.Statement(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	activeProducts, err := s.repo.CountActiveProducts(ctx)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("finance: count products: %w", err)
	}
	lowStock, err := s.repo.CountLowStockMaterials(ctx, s.lowStockThreshold)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("finance: count low stock: %w", err)
	}
	return DashboardSummary{
		TotalInvested:     st.MaterialsCost,
		TotalSales:        st.TotalRevenue,
		NetProfit:         st.NetProfit,
		NetMarginPercent:  st.NetMarginPercent,
		ActiveProducts:    activeProducts,
		LowStockMaterials: lowStock,
	}, nil
}

// Invalidate bumps the cache version after sales/expense/material writes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
