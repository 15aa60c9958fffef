package unit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ListUnits(c *gin.Context) {
	var propertyID *uint
	if v := c.Query("property_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property_id"})
			return
		}
		pid := uint(id)
		propertyID = &pid
	}

	units, err := h.svc.ListUnits(c.Request.Context(), propertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch units"})
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *Handler) GetUnit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	u, err := h.svc.GetUnit(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch unit"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) CreateUnit(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.svc.CreateUnit(c.Request.Context(), in)
	if errors.Is(err, ErrPropertyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create unit"})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) UpdateUnit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.svc.UpdateUnit(c.Request.Context(), id, in)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
	case errors.Is(err, ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update unit"})
	default:
		c.JSON(http.StatusOK, u)
	}
}

func (h *Handler) DeleteUnit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	err = h.svc.DeleteUnit(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete unit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unit deleted successfully"})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
