package domain

import (
	"context"
	"errors"
	"time"
)

// Sort fields accepted by ListMerchantAnalytics. Numeric fields compare
// numerically; SortByMerchantName compares lexicographically.
const (
	SortByTotalAmount       = "totalAmount"
	SortByTotalTransactions = "totalTransactions"
	SortByMerchantName      = "merchantName"
	SortBySuccessRate       = "successRate"
	SortByAverageAmount     = "averageTransactionAmount"
)

const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

type ListMerchantAnalyticsRequest struct {
	StartDate    *time.Time
	EndDate      *time.Time
	MerchantName string
	MID          string
	TID          string
	SortBy       string // defaults to SortByTotalAmount
	SortOrder    string // defaults to SortOrderDesc
}

type Service interface {
	ListMerchantAnalytics(context.Context, ListMerchantAnalyticsRequest) ([]MerchantAnalytics, error)
}

var ErrQueryFailed = errors.New("analytics_query_failed")
