package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/nasmila140/property-lease-management-system/internal/application/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/persistence/memory"
	"github.com/nasmila140/property-lease-management-system/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type billingFixture struct {
	router *gin.Engine
	bills  *memory.BillingPeriodRepository
}

func newBillingFixture() *billingFixture {
	bills := memory.NewBillingPeriodRepository()
	service := ledgerapp.NewBillingService(bills)
	h := NewBillingHandler(service, ledgerapp.NewBillImportService(service))

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	return &billingFixture{router: router, bills: bills}
}

func (f *billingFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func addBillBody(tenantID uuid.UUID, month, year int) map[string]any {
	return map[string]any{
		"tenant_id":     tenantID,
		"month":         month,
		"year":          year,
		"rent":          "1200.00",
		"water_charge":  "45.50",
		"sewage_charge": "20.00",
	}
}

func TestBillingHandler_AddBillingPeriod(t *testing.T) {
	f := newBillingFixture()
	tenantID := uuid.New()

	rec := f.do(t, http.MethodPost, "/api/v1/billing-periods", addBillBody(tenantID, 3, 2026))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["month"])
	assert.Equal(t, "1265.5", data["total"])
	assert.Equal(t, "unpaid", data["status"])
}

func TestBillingHandler_AddBillingPeriod_Duplicate(t *testing.T) {
	f := newBillingFixture()
	tenantID := uuid.New()

	rec := f.do(t, http.MethodPost, "/api/v1/billing-periods", addBillBody(tenantID, 3, 2026))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/billing-periods", addBillBody(tenantID, 3, 2026))
	assert.Equal(t, http.StatusConflict, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
}

func TestBillingHandler_AddBillingPeriod_InvalidMonth(t *testing.T) {
	f := newBillingFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/billing-periods", addBillBody(uuid.New(), 13, 2026))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBillingHandler_AddBillingPeriod_MalformedBody(t *testing.T) {
	f := newBillingFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing-periods", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBillingHandler_UpdateBillingPeriod(t *testing.T) {
	f := newBillingFixture()
	tenantID := uuid.New()

	rec := f.do(t, http.MethodPost, "/api/v1/billing-periods", addBillBody(tenantID, 3, 2026))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResponse(t, rec).Data.(map[string]any)
	billID := created["id"].(string)

	update := map[string]any{
		"rent":          "1200.00",
		"water_charge":  "45.50",
		"sewage_charge": "20.00",
		"status":        "paid",
	}
	rec = f.do(t, http.MethodPut, "/api/v1/billing-periods/"+billID, update)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.Equal(t, true, data["changed"])
	bill := data["bill"].(map[string]any)
	assert.Equal(t, "paid", bill["status"])
}

func TestBillingHandler_UpdateBillingPeriod_NoChange(t *testing.T) {
	f := newBillingFixture()
	tenantID := uuid.New()

	rec := f.do(t, http.MethodPost, "/api/v1/billing-periods", addBillBody(tenantID, 3, 2026))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResponse(t, rec).Data.(map[string]any)
	billID := created["id"].(string)

	// Same values, same status: the ledger refuses the no-op.
	update := map[string]any{
		"rent":          "1200.00",
		"water_charge":  "45.50",
		"sewage_charge": "20.00",
		"status":        "unpaid",
	}
	rec = f.do(t, http.MethodPut, "/api/v1/billing-periods/"+billID, update)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNoChange, resp.Error.Code)
}

func TestBillingHandler_UpdateBillingPeriod_NotFound(t *testing.T) {
	f := newBillingFixture()

	update := map[string]any{
		"rent":   "900.00",
		"status": "paid",
	}
	rec := f.do(t, http.MethodPut, "/api/v1/billing-periods/"+uuid.NewString(), update)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBillingHandler_UpdateBillingPeriod_BadID(t *testing.T) {
	f := newBillingFixture()

	rec := f.do(t, http.MethodPut, "/api/v1/billing-periods/not-a-uuid", map[string]any{"status": "paid"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBillingHandler_FindBillingPeriod(t *testing.T) {
	f := newBillingFixture()
	tenantID := uuid.New()

	rec := f.do(t, http.MethodPost, "/api/v1/billing-periods", addBillBody(tenantID, 7, 2025))
	require.Equal(t, http.StatusCreated, rec.Code)

	path := fmt.Sprintf("/api/v1/billing-periods/lookup?tenant_id=%s&month=7&year=2025", tenantID)
	rec = f.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.Equal(t, tenantID.String(), data["tenant_id"])
	assert.Equal(t, float64(2025), data["year"])
}

func TestBillingHandler_FindBillingPeriod_NotFound(t *testing.T) {
	f := newBillingFixture()

	path := fmt.Sprintf("/api/v1/billing-periods/lookup?tenant_id=%s&month=7&year=2025", uuid.New())
	rec := f.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBillingHandler_FindBillingPeriod_BadQuery(t *testing.T) {
	f := newBillingFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/billing-periods/lookup?tenant_id=nope&month=7&year=2025", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	path := fmt.Sprintf("/api/v1/billing-periods/lookup?tenant_id=%s&month=abc&year=2025", uuid.New())
	rec = f.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBillingHandler_ListBillingHistory(t *testing.T) {
	f := newBillingFixture()
	tenantA := uuid.New()
	tenantB := uuid.New()

	seed := func(tenantID uuid.UUID, month, year int) {
		rec := f.do(t, http.MethodPost, "/api/v1/billing-periods", addBillBody(tenantID, month, year))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	seed(tenantA, 1, 2026)
	seed(tenantA, 12, 2025)
	seed(tenantB, 1, 2026)

	rec := f.do(t, http.MethodGet, "/api/v1/billing-periods", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(3), resp.Meta.Total)

	data := resp.Data.(map[string]any)
	bills := data["bills"].([]any)
	require.Len(t, bills, 3)
	// Newest period first.
	first := bills[0].(map[string]any)
	assert.Equal(t, float64(2026), first["year"])

	summary := data["summary"].(map[string]any)
	assert.Equal(t, float64(3), summary["total_records"])

	// Tenant filter narrows the history.
	rec = f.do(t, http.MethodGet, "/api/v1/billing-periods?tenant_id="+tenantA.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeResponse(t, rec)
	assert.Equal(t, int64(2), resp.Meta.Total)

	// Status and year filters combine with tenant as AND.
	path := fmt.Sprintf("/api/v1/billing-periods?tenant_id=%s&status=unpaid&year=2025", tenantA)
	rec = f.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeResponse(t, rec)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestBillingHandler_ListBillingHistory_EmptyLedger(t *testing.T) {
	f := newBillingFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/billing-periods", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(0), resp.Meta.Total)

	data := resp.Data.(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.Equal(t, "0", summary["total_amount"])
}

func TestBillingHandler_ListBillingHistory_BadFilters(t *testing.T) {
	f := newBillingFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/billing-periods?tenant_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/billing-periods?year=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func (f *billingFixture) doImport(t *testing.T, csv string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "bills.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing-periods/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestBillingHandler_ImportBillingPeriods(t *testing.T) {
	t.Run("imports a CSV file and reports counts", func(t *testing.T) {
		f := newBillingFixture()
		tenantID := uuid.New()
		csv := fmt.Sprintf("tenant_id,month,year,rent\n%s,3,2024,500.00\n%s,4,2024,500.00\n", tenantID, tenantID)

		rec := f.doImport(t, csv)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		require.True(t, resp.Success)
		data := resp.Data.(map[string]any)
		assert.Equal(t, float64(2), data["total_rows"])
		assert.Equal(t, float64(2), data["imported"])

		lookup := f.do(t, http.MethodGet,
			fmt.Sprintf("/api/v1/billing-periods/lookup?tenant_id=%s&month=4&year=2024", tenantID), nil)
		assert.Equal(t, http.StatusOK, lookup.Code)
	})

	t.Run("row failures come back in the result, not as an error", func(t *testing.T) {
		f := newBillingFixture()
		csv := "tenant_id,month,year,rent\nnot-a-uuid,3,2024,500.00\n"

		rec := f.doImport(t, csv)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeResponse(t, rec).Data.(map[string]any)
		assert.Equal(t, float64(0), data["imported"])
		assert.Equal(t, float64(1), data["failed"])
	})

	t.Run("missing columns reject the file", func(t *testing.T) {
		f := newBillingFixture()

		rec := f.doImport(t, "month,year\n3,2024\n")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("request without a file is a bad request", func(t *testing.T) {
		f := newBillingFixture()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/billing-periods/import", nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
