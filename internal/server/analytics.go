package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/smallbiznis/txnsight/internal/analytics/domain"
)

var queryDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ListMerchantAnalytics serves GET /api/v1/analytics/merchants.
//
// Accepted query parameters: startDate, endDate, merchantName (substring,
// case-insensitive), mid, tid, sortBy (totalAmount | totalTransactions |
// merchantName | successRate | averageTransactionAmount; default
// totalAmount) and sortOrder (asc | desc; default desc). merchantName
// sorts lexicographically, every other field numerically.
func (s *Server) ListMerchantAnalytics(c *gin.Context) {
	req := analyticsdomain.ListMerchantAnalyticsRequest{
		MerchantName: strings.TrimSpace(c.Query("merchantName")),
		MID:          strings.TrimSpace(c.Query("mid")),
		TID:          strings.TrimSpace(c.Query("tid")),
		SortBy:       strings.TrimSpace(c.Query("sortBy")),
		SortOrder:    strings.TrimSpace(c.Query("sortOrder")),
	}

	if raw := strings.TrimSpace(c.Query("startDate")); raw != "" {
		ts, err := parseQueryDate(raw)
		if err != nil {
			AbortWithError(c, newValidationError("startDate", "invalid_date", "startDate is not a valid date"))
			return
		}
		req.StartDate = &ts
	}
	if raw := strings.TrimSpace(c.Query("endDate")); raw != "" {
		ts, err := parseQueryDate(raw)
		if err != nil {
			AbortWithError(c, newValidationError("endDate", "invalid_date", "endDate is not a valid date"))
			return
		}
		req.EndDate = &ts
	}

	analytics, err := s.analyticsSvc.ListMerchantAnalytics(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

func parseQueryDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range queryDateLayouts {
		ts, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
