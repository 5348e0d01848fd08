package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblick1327/shipping/internal/application"
	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/logging"
	"github.com/jblick1327/shipping/pkg/metrics"
)

type stubOrders struct {
	fetchFn func(context.Context, domain.OrderNumber) (*domain.OrderRecord, error)
	updates []domain.ShipmentUpdate
}

func (s *stubOrders) FetchOrder(ctx context.Context, number domain.OrderNumber) (*domain.OrderRecord, error) {
	if s.fetchFn != nil {
		return s.fetchFn(ctx, number)
	}
	return &domain.OrderRecord{
		ShipmentID:    "SH100234",
		ShipToName:    "BRIGHT BEGINNINGS DAYCARE",
		ShipToAddress: "45 ELM STREET",
		ShipToContact: "ATTN: DANA 416 555 0199",
		ShipToCity:    "Toronto, Ontario",
		ShipToPostal:  "M4B 1B3",
	}, nil
}

func (s *stubOrders) UpdateShipment(ctx context.Context, update domain.ShipmentUpdate) error {
	s.updates = append(s.updates, update)
	return nil
}

type stubRenderer struct{}

func (stubRenderer) FillTemplate(ctx context.Context, fields domain.FieldMap, carrierName, shipmentID string, date time.Time) (string, error) {
	return "/out/" + carrierName + "_" + shipmentID + "_BOL.pdf", nil
}

func (stubRenderer) RenderLabels(ctx context.Context, sequence []domain.LabelDescriptor, carrierName, shipmentID string, date time.Time) (string, error) {
	return "/out/" + carrierName + "_" + shipmentID + "_Label.pdf", nil
}

type stubHistory struct {
	summaries []domain.RunSummary
}

func (s *stubHistory) Append(ctx context.Context, summary domain.RunSummary) error {
	s.summaries = append(s.summaries, summary)
	return nil
}

func (s *stubHistory) Recent(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit < len(s.summaries) {
		return s.summaries[:limit], nil
	}
	return s.summaries, nil
}

func testLogger() *logging.Logger {
	cfg := logging.DefaultConfig("api-test")
	cfg.Level = logging.LevelError
	return logging.New(cfg)
}

func newTestRouter(t *testing.T, orders *stubOrders) *gin.Engine {
	t.Helper()
	logger := testLogger()
	m := metrics.New(metrics.DefaultConfig("api-test"))
	service := application.NewBOLService(orders, stubRenderer{}, &stubHistory{}, nil, m, logger)
	return NewRouter(service, m, logger, nil)
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func validGenerateBody() map[string]any {
	return map[string]any{
		"carrierOption": 3, // FF
		"orderNumbers":  []string{"12345678"},
		"dimensions": []map[string]string{
			{"value": "482440"},
			{"value": "30x20x10", "kind": "carpet"},
		},
		"declaredSkids":  1,
		"cartons":        6,
		"trackingNumber": "TN100",
		"quoteNumber":    "Q55",
		"quotePrice":     "120.00",
		"weight":         "350",
		"shipDate":       "2026-08-24T00:00:00Z",
	}
}

func TestGenerateEndpoint(t *testing.T) {
	t.Run("valid shipment returns the run report", func(t *testing.T) {
		orders := &stubOrders{}
		router := newTestRouter(t, orders)

		recorder := performJSON(t, router, http.MethodPost, "/api/v1/bol", validGenerateBody())
		require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

		var report application.RunReportDTO
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &report))
		assert.Equal(t, "done", report.Status)
		assert.Equal(t, "FF", report.CarrierName)
		assert.Equal(t, "SH100234", report.ShipmentID)
		assert.Equal(t, 2, report.LabelPages)
		assert.Len(t, orders.updates, 1)
	})

	t.Run("missing order numbers is a binding failure", func(t *testing.T) {
		body := validGenerateBody()
		delete(body, "orderNumbers")
		router := newTestRouter(t, &stubOrders{})

		recorder := performJSON(t, router, http.MethodPost, "/api/v1/bol", body)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

		var response APIErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "INPUT_FORMAT", response.Code)
		assert.Equal(t, "/api/v1/bol", response.Path)
		assert.NotEmpty(t, response.RequestID)
	})

	t.Run("unknown delivery service rejected by binding", func(t *testing.T) {
		body := validGenerateBody()
		body["deliveryInstructions"] = []string{"Inside", "Overnight"}
		router := newTestRouter(t, &stubOrders{})

		recorder := performJSON(t, router, http.MethodPost, "/api/v1/bol", body)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("carrier validation failure surfaces its code", func(t *testing.T) {
		body := validGenerateBody()
		body["trackingNumber"] = "" // FF requires tracking
		router := newTestRouter(t, &stubOrders{})

		recorder := performJSON(t, router, http.MethodPost, "/api/v1/bol", body)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

		var response APIErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "CARRIER_VALIDATION", response.Code)
	})

	t.Run("unknown order number maps to not found", func(t *testing.T) {
		orders := &stubOrders{
			fetchFn: func(ctx context.Context, number domain.OrderNumber) (*domain.OrderRecord, error) {
				return nil, domain.ErrOrderNotFound
			},
		}
		router := newTestRouter(t, orders)

		recorder := performJSON(t, router, http.MethodPost, "/api/v1/bol", validGenerateBody())
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestPreviewEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubOrders{})

	recorder := performJSON(t, router, http.MethodPost, "/api/v1/bol/preview", validGenerateBody())
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var preview application.PreviewDTO
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &preview))
	assert.Equal(t, "FF", preview.CarrierName)
	assert.Equal(t, "SH100234", preview.Fields["BOLnum"])
	assert.Equal(t, "48x24x40, 30x20x10 (C)", preview.Fields["Desc_2"])
	assert.Len(t, preview.Labels, 2)
}

func TestGetOrderEndpoint(t *testing.T) {
	t.Run("existing order returns the normalized record", func(t *testing.T) {
		router := newTestRouter(t, &stubOrders{})

		recorder := performJSON(t, router, http.MethodGet, "/api/v1/orders/12345678", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var record application.OrderRecordDTO
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &record))
		assert.Equal(t, "SH100234", record.ShipmentID)
		assert.Equal(t, "TORONTO, ON.", record.CityProvince)
	})

	t.Run("malformed order number is a format error", func(t *testing.T) {
		router := newTestRouter(t, &stubOrders{})

		recorder := performJSON(t, router, http.MethodGet, "/api/v1/orders/12AB", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestRecentRunsEndpoint(t *testing.T) {
	t.Run("runs listed after a generation", func(t *testing.T) {
		router := newTestRouter(t, &stubOrders{})

		recorder := performJSON(t, router, http.MethodPost, "/api/v1/bol", validGenerateBody())
		require.Equal(t, http.StatusCreated, recorder.Code)

		recorder = performJSON(t, router, http.MethodGet, "/api/v1/runs", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Runs []application.RunSummaryDTO `json:"runs"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.Len(t, response.Runs, 1)
		assert.Equal(t, "done", response.Runs[0].Status)
	})

	t.Run("non-numeric limit rejected", func(t *testing.T) {
		router := newTestRouter(t, &stubOrders{})

		recorder := performJSON(t, router, http.MethodGet, "/api/v1/runs?limit=ten", nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestOperationalEndpoints(t *testing.T) {
	router := newTestRouter(t, &stubOrders{})

	recorder := performJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = performJSON(t, router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = performJSON(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = performJSON(t, router, http.MethodGet, "/no/such/route", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
