package payment

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gorgui02/rental-management-backend/internal/user"
)

type Handler struct {
	svc      Service
	receipts ReceiptGenerator
}

func NewHandler(svc Service, receipts ReceiptGenerator) *Handler {
	return &Handler{svc: svc, receipts: receipts}
}

func (h *Handler) ListPayments(c *gin.Context) {
	f := ListFilter{
		Period: c.Query("period"),
		Status: c.Query("status"),
	}
	if raw := c.Query("tenant_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant_id"})
			return
		}
		tid := uint(id)
		f.TenantID = &tid
	}

	rows, err := h.svc.ListPayments(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetPayment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	p, err := h.svc.GetPayment(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch payment"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var in RecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.RecordPayment(c.Request.Context(), in, actorID(c), c.ClientIP())
	if errors.Is(err, ErrTenantNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GeneratePayments creates the unpaid rent rows for a billing period, one per
// tenant on an occupied unit.
func (h *Handler) GeneratePayments(c *gin.Context) {
	var body struct {
		Period string `json:"period" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period is required"})
		return
	}

	result, err := h.svc.GeneratePayments(c.Request.Context(), body.Period, actorID(c), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate payments"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.UpdatePayment(c.Request.Context(), id, in)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	if errors.Is(err, ErrDuplicate) {
		c.JSON(http.StatusConflict, gin.H{"error": "a payment already exists for this tenant, period and type"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePayment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	err = h.svc.DeletePayment(c.Request.Context(), id, actorID(c), c.ClientIP())
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}

func (h *Handler) GenerateReceipt(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	data, filename, err := h.receipts.Generate(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotPaid) {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found or not paid"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func actorID(c *gin.Context) *uint {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil
	}
	u, ok := v.(*user.User)
	if !ok {
		return nil
	}
	return &u.ID
}
