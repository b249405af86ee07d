package transaction

import (
	"time"

	"github.com/PUSHKARDEORE/Finalytics/internal/stats"
	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
)

type transactionResponse struct {
	ID          int                  `json:"id"`
	Date        time.Time            `json:"date"`
	Amount      float64              `json:"amount"`
	Category    transaction.Category `json:"category"`
	Status      transaction.Status   `json:"status"`
	UserID      string               `json:"user_id"`
	UserProfile string               `json:"user_profile"`
}

type paginationResponse struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

type listResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Pagination   paginationResponse    `json:"pagination"`
}

func toListResponse(res *transaction.ListResult) listResponse {
	txs := make([]transactionResponse, len(res.Transactions))
	for i, tx := range res.Transactions {
		txs[i] = toResponse(tx)
	}

	return listResponse{
		Transactions: txs,
		Pagination: paginationResponse{
			CurrentPage:  res.Pagination.CurrentPage,
			TotalPages:   res.Pagination.TotalPages,
			TotalItems:   res.Pagination.TotalItems,
			ItemsPerPage: res.Pagination.ItemsPerPage,
		},
	}
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Status:      tx.Status,
		UserID:      tx.UserID,
		UserProfile: tx.UserProfile,
	}
}

type summaryResponse struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalExpenses     float64 `json:"totalExpenses"`
	NetProfit         float64 `json:"netProfit"`
	TotalTransactions int     `json:"totalTransactions"`
}

type breakdownResponse struct {
	Value string  `json:"value"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type trendResponse struct {
	Year     int                  `json:"year"`
	Month    int                  `json:"month"`
	Category transaction.Category `json:"category"`
	Total    float64              `json:"total"`
}

type statsResponse struct {
	Summary           summaryResponse     `json:"summary"`
	CategoryBreakdown []breakdownResponse `json:"categoryBreakdown"`
	StatusBreakdown   []breakdownResponse `json:"statusBreakdown"`
	MonthlyTrends     []trendResponse     `json:"monthlyTrends"`
}

func toStatsResponse(st *stats.Stats) statsResponse {
	breakdowns := func(aggs []transaction.FieldAggregate) []breakdownResponse {
		out := make([]breakdownResponse, len(aggs))
		for i, agg := range aggs {
			out[i] = breakdownResponse{Value: agg.Value, Total: agg.Total, Count: agg.Count}
		}

		return out
	}

	trends := make([]trendResponse, len(st.MonthlyTrends))
	for i, tr := range st.MonthlyTrends {
		trends[i] = trendResponse{Year: tr.Year, Month: tr.Month, Category: tr.Category, Total: tr.Total}
	}

	return statsResponse{
		Summary: summaryResponse{
			TotalRevenue:      st.Summary.TotalRevenue,
			TotalExpenses:     st.Summary.TotalExpenses,
			NetProfit:         st.Summary.NetProfit,
			TotalTransactions: st.Summary.TotalTransactions,
		},
		CategoryBreakdown: breakdowns(st.CategoryBreakdown),
		StatusBreakdown:   breakdowns(st.StatusBreakdown),
		MonthlyTrends:     trends,
	}
}

type filtersResponse struct {
	Categories []string `json:"categories"`
	Statuses   []string `json:"statuses"`
	UserIDs    []string `json:"userIds"`
}
