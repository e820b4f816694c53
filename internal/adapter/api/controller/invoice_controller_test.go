package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/dto"
	"github.com/haeunkim/luthier-crm/internal/adapter/repository"
	invoicedomain "github.com/haeunkim/luthier-crm/internal/domain/invoice"
	"github.com/haeunkim/luthier-crm/pkg/logger"
)

type fakeInvoiceRepo struct {
	invoices []*invoicedomain.Invoice
}

func (r *fakeInvoiceRepo) Create(_ context.Context, i *invoicedomain.Invoice) error {
	r.invoices = append(r.invoices, i)
	return nil
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, id string) (*invoicedomain.Invoice, error) {
	for _, i := range r.invoices {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, repository.ErrInvoiceNotFound
}

func (r *fakeInvoiceRepo) List(_ context.Context, limit, offset int) ([]*invoicedomain.Invoice, error) {
	return paginate(r.invoices, limit, offset), nil
}

func (r *fakeInvoiceRepo) FindByClient(_ context.Context, clientID string, limit, offset int) ([]*invoicedomain.Invoice, error) {
	var out []*invoicedomain.Invoice
	for _, i := range r.invoices {
		if i.ClientID != nil && *i.ClientID == clientID {
			out = append(out, i)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, i *invoicedomain.Invoice) error { return nil }
func (r *fakeInvoiceRepo) Delete(_ context.Context, id string) error                { return nil }
func (r *fakeInvoiceRepo) Count(_ context.Context) (int, error)                     { return len(r.invoices), nil }

func (r *fakeInvoiceRepo) ListInvoiceNumbers(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(r.invoices))
	for _, i := range r.invoices {
		out = append(out, i.InvoiceNumber)
	}
	return out, nil
}

func newInvoiceRouter(t *testing.T, repo *fakeInvoiceRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := NewInvoiceController(repo, logger.NewFromZap(zaptest.NewLogger(t)))

	r := gin.New()
	invoices := r.Group("/invoices")
	invoices.POST("", ctrl.Create)
	invoices.GET("/:id", ctrl.Get)
	return r
}

const invoiceBody = `{"issue_date":"2024-06-01","items":[{"description":"Bow rehair","quantity":1,"unit_price":"120"}]}`

func TestInvoiceCreateGeneratesNumber(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	r := newInvoiceRouter(t, repo)

	w := postJSON(t, r, "/invoices", invoiceBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "IV0000001", resp.InvoiceNumber)
	assert.Equal(t, "Draft", resp.Status)

	w = postJSON(t, r, "/invoices", invoiceBody)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "IV0000002", resp.InvoiceNumber)
}

func TestInvoiceCreateNormalizesSuppliedNumber(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	r := newInvoiceRouter(t, repo)

	w := postJSON(t, r, "/invoices",
		`{"invoice_number":"iv7","issue_date":"2024-06-01","items":[{"description":"Strings","quantity":2,"unit_price":"35"}]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "IV0000007", resp.InvoiceNumber)
}

func TestInvoiceCreateRejectsShortFormOfTakenNumber(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	r := newInvoiceRouter(t, repo)

	w := postJSON(t, r, "/invoices", invoiceBody)
	require.Equal(t, http.StatusCreated, w.Code)

	// IV1 spells the same logical number as the generated IV0000001
	w = postJSON(t, r, "/invoices",
		`{"invoice_number":"IV1","issue_date":"2024-06-01","items":[{"description":"Strings","quantity":1,"unit_price":"35"}]}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestInvoiceCreateRejectsMalformedNumber(t *testing.T) {
	r := newInvoiceRouter(t, &fakeInvoiceRepo{})

	w := postJSON(t, r, "/invoices",
		`{"invoice_number":"2024-001","issue_date":"2024-06-01","items":[{"description":"Strings","quantity":1,"unit_price":"35"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
