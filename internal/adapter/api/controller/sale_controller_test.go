package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/dto"
	"github.com/haeunkim/luthier-crm/internal/adapter/repository"
	clientdomain "github.com/haeunkim/luthier-crm/internal/domain/client"
	instrumentdomain "github.com/haeunkim/luthier-crm/internal/domain/instrument"
	saledomain "github.com/haeunkim/luthier-crm/internal/domain/sale"
	"github.com/haeunkim/luthier-crm/pkg/logger"
)

type fakeSaleRepo struct {
	sales []*saledomain.Sale
}

func (r *fakeSaleRepo) Create(_ context.Context, s *saledomain.Sale) error {
	r.sales = append(r.sales, s)
	return nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, id string) (*saledomain.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repository.ErrSaleNotFound
}

func (r *fakeSaleRepo) List(_ context.Context, limit, offset int) ([]*saledomain.Sale, error) {
	return paginate(r.sales, limit, offset), nil
}

func (r *fakeSaleRepo) FindByDateRange(_ context.Context, from, to time.Time, limit, offset int) ([]*saledomain.Sale, error) {
	var out []*saledomain.Sale
	for _, s := range r.sales {
		if !s.SaleDate.Before(from) && !s.SaleDate.After(to) {
			out = append(out, s)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeSaleRepo) FindByClient(_ context.Context, clientID string, limit, offset int) ([]*saledomain.Sale, error) {
	var out []*saledomain.Sale
	for _, s := range r.sales {
		if s.ClientID != nil && *s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeSaleRepo) Update(_ context.Context, s *saledomain.Sale) error { return nil }
func (r *fakeSaleRepo) Delete(_ context.Context, id string) error         { return nil }
func (r *fakeSaleRepo) Count(_ context.Context) (int, error)              { return len(r.sales), nil }

func (r *fakeSaleRepo) CountByClient(_ context.Context, clientID string) (int, error) {
	count := 0
	for _, s := range r.sales {
		if s.ClientID != nil && *s.ClientID == clientID {
			count++
		}
	}
	return count, nil
}

type fakeClientRepo struct {
	clients []*clientdomain.Client
}

func (r *fakeClientRepo) Create(_ context.Context, c *clientdomain.Client) error {
	r.clients = append(r.clients, c)
	return nil
}

func (r *fakeClientRepo) FindByID(_ context.Context, id string) (*clientdomain.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrClientNotFound
}

func (r *fakeClientRepo) List(_ context.Context, limit, offset int) ([]*clientdomain.Client, error) {
	return paginate(r.clients, limit, offset), nil
}

func (r *fakeClientRepo) FindByName(_ context.Context, term string, limit, offset int) ([]*clientdomain.Client, error) {
	return paginate(r.clients, limit, offset), nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *clientdomain.Client) error { return nil }
func (r *fakeClientRepo) Delete(_ context.Context, id string) error              { return nil }
func (r *fakeClientRepo) Count(_ context.Context) (int, error)                   { return len(r.clients), nil }

func (r *fakeClientRepo) ListClientNumbers(_ context.Context) ([]string, error) {
	var out []string
	for _, c := range r.clients {
		if c.ClientNumber != nil {
			out = append(out, *c.ClientNumber)
		}
	}
	return out, nil
}

type fakeInstrumentRepo struct {
	instruments []*instrumentdomain.Instrument
}

func (r *fakeInstrumentRepo) Create(_ context.Context, i *instrumentdomain.Instrument) error {
	r.instruments = append(r.instruments, i)
	return nil
}

func (r *fakeInstrumentRepo) FindByID(_ context.Context, id string) (*instrumentdomain.Instrument, error) {
	for _, i := range r.instruments {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, repository.ErrInstrumentNotFound
}

func (r *fakeInstrumentRepo) List(_ context.Context, limit, offset int) ([]*instrumentdomain.Instrument, error) {
	return paginate(r.instruments, limit, offset), nil
}

func (r *fakeInstrumentRepo) FindByStatus(_ context.Context, status instrumentdomain.Status, limit, offset int) ([]*instrumentdomain.Instrument, error) {
	return paginate(r.instruments, limit, offset), nil
}

func (r *fakeInstrumentRepo) FindByMaker(_ context.Context, term string, limit, offset int) ([]*instrumentdomain.Instrument, error) {
	return paginate(r.instruments, limit, offset), nil
}

func (r *fakeInstrumentRepo) Update(_ context.Context, i *instrumentdomain.Instrument) error {
	return nil
}

func (r *fakeInstrumentRepo) UpdateStatus(_ context.Context, id string, status instrumentdomain.Status) error {
	return nil
}

func (r *fakeInstrumentRepo) Delete(_ context.Context, id string) error { return nil }

func (r *fakeInstrumentRepo) Count(_ context.Context) (int, error) {
	return len(r.instruments), nil
}

func (r *fakeInstrumentRepo) ListSerialNumbers(_ context.Context) ([]string, error) {
	var out []string
	for _, i := range r.instruments {
		if i.SerialNumber != nil {
			out = append(out, *i.SerialNumber)
		}
	}
	return out, nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	end := offset + limit
	if end > len(in) {
		end = len(in)
	}
	return in[offset:end]
}

func newSaleRouter(t *testing.T, saleRepo *fakeSaleRepo, clientRepo *fakeClientRepo, instrumentRepo *fakeInstrumentRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewFromZap(zaptest.NewLogger(t))
	ctrl := NewSaleController(saleRepo, clientRepo, instrumentRepo, log)

	r := gin.New()
	sales := r.Group("/sales")
	sales.POST("", ctrl.Create)
	sales.GET("", ctrl.List)
	sales.GET("/report", ctrl.Report)
	sales.GET("/summary", ctrl.Summary)
	sales.GET("/export", ctrl.Export)
	sales.GET("/:id", ctrl.Get)
	sales.GET("/:id/receipt", ctrl.Receipt)
	return r
}

func seedLedger(t *testing.T) (*fakeSaleRepo, *fakeClientRepo, *fakeInstrumentRepo) {
	t.Helper()

	cl, err := clientdomain.NewClient("Grace", "Park", "grace@example.com")
	require.NoError(t, err)
	inst, err := instrumentdomain.NewInstrument("Guarneri", "Violin", "", 1740, decimal.NewFromInt(9000), true)
	require.NoError(t, err)

	s1, err := saledomain.NewSale(&cl.ID, &inst.ID, decimal.NewFromInt(9000),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	s2, err := saledomain.NewSale(&cl.ID, nil, decimal.NewFromInt(-1000),
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	s3, err := saledomain.NewSale(nil, nil, decimal.NewFromInt(500),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	return &fakeSaleRepo{sales: []*saledomain.Sale{s1, s2, s3}},
		&fakeClientRepo{clients: []*clientdomain.Client{cl}},
		&fakeInstrumentRepo{instruments: []*instrumentdomain.Instrument{inst}}
}

func TestSaleReport(t *testing.T) {
	saleRepo, clientRepo, instrumentRepo := seedLedger(t)
	r := newSaleRouter(t, saleRepo, clientRepo, instrumentRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/report", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SalesReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 3, resp.Count)
	assert.True(t, resp.Totals.Revenue.Equal(decimal.NewFromInt(9500)))
	assert.True(t, resp.Totals.Refund.Equal(decimal.NewFromInt(1000)))
	// no explicit range, so the label reflects the ledger's actual bounds
	assert.Equal(t, "Mar 10, 2024 - May 1, 2024", resp.Period)

	// first row keeps its joined client and instrument
	require.NotNil(t, resp.Data[0].Client)
	assert.Equal(t, "grace@example.com", resp.Data[0].Client.Email)
	require.NotNil(t, resp.Data[0].Instrument)
	assert.Equal(t, "Guarneri", resp.Data[0].Instrument.Maker)

	// third row has no references at all
	assert.Nil(t, resp.Data[2].Client)
	assert.Nil(t, resp.Data[2].Instrument)
}

func TestSaleReportDateRange(t *testing.T) {
	saleRepo, clientRepo, instrumentRepo := seedLedger(t)
	r := newSaleRouter(t, saleRepo, clientRepo, instrumentRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/report?from=2024-03-01&to=2024-03-31", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SalesReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "March 2024", resp.Period)
}

func TestSaleReportEmptyLedger(t *testing.T) {
	r := newSaleRouter(t, &fakeSaleRepo{}, &fakeClientRepo{}, &fakeInstrumentRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/report", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SalesReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, "All time", resp.Period)
}

func TestSaleListClientFilterCount(t *testing.T) {
	saleRepo, clientRepo, instrumentRepo := seedLedger(t)
	r := newSaleRouter(t, saleRepo, clientRepo, instrumentRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales?client_id="+clientRepo.clients[0].ID, nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []dto.SaleResponse `json:"data"`
		Count int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// count reflects the filtered total, not the whole ledger
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Count)
}

func TestSaleReportSearchFilter(t *testing.T) {
	saleRepo, clientRepo, instrumentRepo := seedLedger(t)
	r := newSaleRouter(t, saleRepo, clientRepo, instrumentRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/report?search=grace", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SalesReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestSaleReportInvalidInputs(t *testing.T) {
	saleRepo, clientRepo, instrumentRepo := seedLedger(t)
	r := newSaleRouter(t, saleRepo, clientRepo, instrumentRepo)

	cases := []string{
		"/sales/report?preset=nonsense",
		"/sales/report?from=March+1st",
		"/sales/report?sort=upwards",
	}
	for _, path := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestSaleExportCSV(t *testing.T) {
	saleRepo, clientRepo, instrumentRepo := seedLedger(t)
	r := newSaleRouter(t, saleRepo, clientRepo, instrumentRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/export", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.String()
	assert.Contains(t, body, "Date,Sale ID,Client Name,Client Email,Instrument,Amount,Status,Notes")
	assert.Contains(t, body, "Refunded")
	assert.Contains(t, body, "Guarneri Violin")
}

func TestSaleSummary(t *testing.T) {
	saleRepo, clientRepo, instrumentRepo := seedLedger(t)
	r := newSaleRouter(t, saleRepo, clientRepo, instrumentRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/summary", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []saledomain.ClientSummary `json:"data"`
		Count int                        `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "Grace Park", resp.Data[0].ClientName)
	assert.Equal(t, 2, resp.Data[0].PurchaseCount)
	assert.Equal(t, saledomain.UnassignedClientKey, resp.Data[1].ClientID)
}

func TestSaleReceipt(t *testing.T) {
	saleRepo, clientRepo, instrumentRepo := seedLedger(t)
	r := newSaleRouter(t, saleRepo, clientRepo, instrumentRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/"+saleRepo.sales[0].ID+"/receipt", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var receipt saledomain.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Contains(t, receipt.Body, "Grace%20Park")
	assert.Contains(t, receipt.Body, "Guarneri%20Violin")
}

func TestSaleGetInvalidID(t *testing.T) {
	saleRepo, clientRepo, instrumentRepo := seedLedger(t)
	r := newSaleRouter(t, saleRepo, clientRepo, instrumentRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
