package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momo-dashboard/internal/models"
	"momo-dashboard/internal/store"
)

func amt(n int64) *int64 { return &n }

func newTestServer(t *testing.T, records []models.Transaction) (*store.SQLiteStore, http.Handler) {
	t.Helper()
	st, err := store.New(context.Background(), store.Config{DBPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	if records != nil {
		_, err := st.ResetAndLoad(context.Background(), records, "test.xml")
		require.NoError(t, err)
	}
	return st, NewHandler(st, zerolog.Nop()).Routes()
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func fixtures() []models.Transaction {
	return []models.Transaction{
		{Date: "d1", Category: models.CatIncoming, Amount: amt(2000), Counterparty: "Jane Smith", Body: "b1"},
		{Date: "d2", Category: models.CatOTP, Body: "b2"},
		{Date: "d3", Category: models.CatIncoming, Amount: amt(500), Counterparty: "Bob", Body: "b3"},
	}
}

func TestSummary(t *testing.T) {
	_, h := newTestServer(t, fixtures())

	rec := doGet(t, h, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[
		{"transaction_type":"Incoming Money","count":2,"total":2500},
		{"transaction_type":"OTP Notification","count":1,"total":0}
	]`, rec.Body.String())
}

func TestSummary_EmptyStoreIsEmptyArray(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := doGet(t, h, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTransactions_NullNumbersEmptyRecipient(t *testing.T) {
	_, h := newTestServer(t, fixtures())

	rec := doGet(t, h, "/api/transactions?type="+url.QueryEscape(models.CatOTP))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"id":2,"date":"d2","transaction_type":"OTP Notification",
		"amount":null,"recipient":"","fee":null,"body":"b2"
	}]`, rec.Body.String())
}

func TestTransactions_AllWithoutFilter(t *testing.T) {
	_, h := newTestServer(t, fixtures())

	rec := doGet(t, h, "/api/transactions")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	for i, tx := range got {
		assert.Equal(t, int64(i+1), tx.ID)
	}
}

func TestTransactions_FilterFallback(t *testing.T) {
	_, h := newTestServer(t, fixtures())

	for _, filter := range []string{"Incoming Money", "incoming money", "coming"} {
		rec := doGet(t, h, "/api/transactions?type="+url.QueryEscape(filter))
		require.Equal(t, http.StatusOK, rec.Code, filter)

		var got []models.Transaction
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2, filter)
		assert.Equal(t, "Jane Smith", got[0].Counterparty)
		assert.Equal(t, amt(500), got[1].Amount)
	}

	rec := doGet(t, h, "/api/transactions?type=Nonexistent")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDebugTypes(t *testing.T) {
	_, h := newTestServer(t, []models.Transaction{
		{Category: "Incoming Money "},
		{Category: models.CatOTP},
	})

	rec := doGet(t, h, "/api/debug/types")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"type":"Incoming Money ","length":15,"repr":"\"Incoming Money \""},
		{"type":"OTP Notification","length":16,"repr":"\"OTP Notification\""}
	]`, rec.Body.String())
}

func TestStatus(t *testing.T) {
	t.Run("before import", func(t *testing.T) {
		_, h := newTestServer(t, nil)

		rec := doGet(t, h, "/api/status")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"records":0,"last_import":null}`, rec.Body.String())
	})

	t.Run("after import", func(t *testing.T) {
		_, h := newTestServer(t, fixtures())

		rec := doGet(t, h, "/api/status")
		require.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			Records    int64            `json:"records"`
			LastImport *store.ImportRun `json:"last_import"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(3), got.Records)
		require.NotNil(t, got.LastImport)
		assert.Equal(t, "test.xml", got.LastImport.Source)
		assert.Equal(t, 3, got.LastImport.Records)
		assert.NotEmpty(t, got.LastImport.ID)
	})
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := doGet(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got["status"])
	assert.NotEmpty(t, got["time"])
}

func TestStoreFailureReturns500(t *testing.T) {
	st, h := newTestServer(t, fixtures())
	require.NoError(t, st.Close())

	for _, target := range []string{"/api/summary", "/api/transactions", "/api/transactions?type=x", "/api/debug/types", "/api/status"} {
		rec := doGet(t, h, target)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, target)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), target)
		assert.NotEmpty(t, got["error"], target)
	}
}

func TestTransactions_StoreErrorIsReportedVerbatim(t *testing.T) {
	st, h := newTestServer(t, fixtures())
	require.NoError(t, st.Close())

	rec := doGet(t, h, "/api/transactions?type=Incoming")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"sql: database is closed"}`, rec.Body.String())
}

func TestStatus_MatchesLastImportRecords(t *testing.T) {
	st, h := newTestServer(t, fixtures())
	_, err := st.ResetAndLoad(context.Background(), fixtures()[:1], "second.xml")
	require.NoError(t, err)

	rec := doGet(t, h, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var got store.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.LastImport)
	assert.Equal(t, int64(1), got.Records)
	assert.Equal(t, 1, got.LastImport.Records)
	assert.Equal(t, "second.xml", got.LastImport.Source)
}

func TestMethodNotAllowed(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/summary", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := doGet(t, h, "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
