package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(f.svc, nil)
	r := gin.New()
	r.POST("/payments", h.RecordPayment)
	r.PUT("/payments/:id", h.UpdatePayment)
	return r
}

func TestRecordPaymentHandlerUnknownTenant(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f)

	body := `{"tenant_id":999,"amount":100000,"date":"2025-03-05","type":"rent","period":"Mars 2025"}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "tenant not found")
}

func TestUpdatePaymentHandlerDuplicateKey(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f)
	ctx := context.Background()

	_, err := f.svc.RecordPayment(ctx, RecordInput{
		TenantID: f.tenantID, Amount: 100000, Date: "2025-03-05",
		Type: TypeRent, Period: "Mars 2025",
	}, nil, "")
	require.NoError(t, err)
	second, err := f.svc.RecordPayment(ctx, RecordInput{
		TenantID: f.tenantID, Amount: 100000, Date: "2025-04-05",
		Type: TypeRent, Period: "Avril 2025",
	}, nil, "")
	require.NoError(t, err)

	body := `{"amount":100000,"type":"rent","status":"paid","period":"Mars 2025"}`
	target := "/payments/" + strconv.FormatUint(uint64(second.ID), 10)
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
