package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/smallbiznis/txnsight/internal/analytics/domain"
	"github.com/smallbiznis/txnsight/internal/config"
	ingestdomain "github.com/smallbiznis/txnsight/internal/ingest/domain"
	"github.com/smallbiznis/txnsight/internal/ingest/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type analyticsStub struct {
	gotReq analyticsdomain.ListMerchantAnalyticsRequest
	result []analyticsdomain.MerchantAnalytics
	err    error
}

func (s *analyticsStub) ListMerchantAnalytics(_ context.Context, req analyticsdomain.ListMerchantAnalyticsRequest) ([]analyticsdomain.MerchantAnalytics, error) {
	s.gotReq = req
	return s.result, s.err
}

type ingestStub struct {
	gotRows []ingestdomain.RawRow
	events  []ingestdomain.Progress
	summary ingestdomain.Summary
	err     error
}

func (s *ingestStub) Upload(_ context.Context, rows []ingestdomain.RawRow, onProgress ingestdomain.ProgressFunc) (ingestdomain.Summary, error) {
	s.gotRows = rows
	for _, p := range s.events {
		if onProgress != nil {
			onProgress(p)
		}
	}
	return s.summary, s.err
}

func newTestServer(t *testing.T, analyticsSvc analyticsdomain.Service, ingestSvc ingestdomain.Service) *Server {
	t.Helper()
	return NewServer(Params{
		Engine:       NewEngine(zap.NewNop()),
		Cfg:          config.Config{Environment: "test"},
		Log:          zap.NewNop(),
		AnalyticsSvc: analyticsSvc,
		IngestSvc:    ingestSvc,
		Reader:       spreadsheet.Provide(),
	})
}

func TestListMerchantAnalytics_OK(t *testing.T) {
	stub := &analyticsStub{
		result: []analyticsdomain.MerchantAnalytics{
			{MerchantName: "Acme Mart", MID: "123", TID: "456", TotalTransactions: 2, TotalAmount: 150},
		},
	}
	srv := newTestServer(t, stub, &ingestStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/analytics/merchants?merchantName=acme&mid=123&tid=456&sortBy=successRate&sortOrder=asc&startDate=2024-03-01&endDate=2024-03-31", nil)
	srv.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "acme", stub.gotReq.MerchantName)
	assert.Equal(t, "123", stub.gotReq.MID)
	assert.Equal(t, "456", stub.gotReq.TID)
	assert.Equal(t, analyticsdomain.SortBySuccessRate, stub.gotReq.SortBy)
	assert.Equal(t, analyticsdomain.SortOrderAsc, stub.gotReq.SortOrder)
	require.NotNil(t, stub.gotReq.StartDate)
	require.NotNil(t, stub.gotReq.EndDate)

	var payload []analyticsdomain.MerchantAnalytics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload, 1)
	assert.Equal(t, "Acme Mart", payload[0].MerchantName)
}

func TestListMerchantAnalytics_InvalidDate(t *testing.T) {
	srv := newTestServer(t, &analyticsStub{}, &ingestStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/merchants?startDate=notadate", nil)
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestListMerchantAnalytics_QueryFailure(t *testing.T) {
	srv := newTestServer(t, &analyticsStub{err: analyticsdomain.ErrQueryFailed}, &ingestStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/merchants", nil)
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error fetching analytics")
}

func buildUploadRequest(t *testing.T, rows [][]any) *http.Request {
	t.Helper()

	book := excelize.NewFile()
	defer book.Close()
	sheet := book.GetSheetName(0)
	for i, cells := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, book.SetSheetRow(sheet, cell, &cells))
	}
	workbook, err := book.WriteToBuffer()
	require.NoError(t, err)

	body := new(bytes.Buffer)
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("file", "txns.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/upload", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func TestUploadTransactions_StreamsProgressAndSummary(t *testing.T) {
	ingest := &ingestStub{
		events: []ingestdomain.Progress{
			{Processed: 1, Saved: 1, Total: 2, Percentage: 50},
			{Processed: 2, Saved: 2, Total: 2, Percentage: 100},
		},
		summary: ingestdomain.Summary{TotalRecords: 2, SavedRecords: 2},
	}
	srv := newTestServer(t, &analyticsStub{}, ingest)

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, buildUploadRequest(t, [][]any{
		{"MERCHANTNAME", "MID", "TID"},
		{"Acme Mart", "123", "456"},
		{"Beta Shop", "789", "012"},
	}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	require.Len(t, ingest.gotRows, 2)
	assert.Equal(t, "Acme Mart", ingest.gotRows[0]["MERCHANTNAME"])

	body := w.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event: progress"))
	assert.Equal(t, 1, strings.Count(body, "event: summary"))
	assert.Contains(t, body, `"totalRecords":2`)
}

func TestUploadTransactions_NoFile(t *testing.T) {
	srv := newTestServer(t, &analyticsStub{}, &ingestStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/upload", nil)
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no file uploaded")
}

func TestUploadTransactions_MalformedFile(t *testing.T) {
	srv := newTestServer(t, &analyticsStub{}, &ingestStub{})

	body := new(bytes.Buffer)
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("file", "txns.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a workbook"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/upload", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "could not parse spreadsheet")
}

func TestUploadTransactions_AllBatchesFail(t *testing.T) {
	ingest := &ingestStub{
		events:  []ingestdomain.Progress{{Processed: 1, Errors: 1, Total: 1, Percentage: 100}},
		summary: ingestdomain.Summary{TotalRecords: 1, Errors: 1},
		err:     ingestdomain.ErrAllBatchesFail,
	}
	srv := newTestServer(t, &analyticsStub{}, ingest)

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, buildUploadRequest(t, [][]any{
		{"MERCHANTNAME"},
		{"Acme Mart"},
	}))

	// stream already open: failure arrives as a terminal error event
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, "error processing file")
	assert.NotContains(t, body, "event: summary")
}
