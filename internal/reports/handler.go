package reports

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc      Service
	exporter Exporter
}

func NewHandler(svc Service, exporter Exporter) *Handler {
	return &Handler{svc: svc, exporter: exporter}
}

// parseQuery fills defaults from the current date: the current month of the
// current year, viewed monthly.
func parseQuery(c *gin.Context) (Query, error) {
	now := time.Now()
	q := Query{
		Type:   c.DefaultQuery("type", ReportTypeOverview),
		Period: c.DefaultQuery("period", PeriodMonth),
		Year:   now.Year(),
		Month:  int(now.Month()),
	}

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("invalid year")
		}
		q.Year = year
	}
	if raw := c.Query("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return q, fmt.Errorf("invalid month")
		}
		q.Month = month
	}

	switch q.Period {
	case PeriodMonth, PeriodQuarter, PeriodYear:
	default:
		return q, fmt.Errorf("invalid period")
	}
	return q, nil
}

func (h *Handler) GetDashboard(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dashboard, err := h.svc.GetDashboard(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute dashboard"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *Handler) GetReport(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.svc.ComputeReport(c.Request.Context(), q)
	if errors.Is(err, ErrInvalidType) || errors.Is(err, ErrInvalidPeriod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) ExportReport(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format := c.DefaultQuery("format", FormatPDF)

	report, err := h.svc.ComputeReport(c.Request.Context(), q)
	if errors.Is(err, ErrInvalidType) || errors.Is(err, ErrInvalidPeriod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute report"})
		return
	}

	data, filename, contentType, err := h.exporter.Export(format, report)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
