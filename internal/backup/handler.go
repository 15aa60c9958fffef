package backup

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gorgui02/rental-management-backend/internal/user"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateBackup(c *gin.Context) {
	info, err := h.svc.CreateBackup(c.Request.Context(), actorID(c), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create backup"})
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (h *Handler) ListBackups(c *gin.Context) {
	infos, err := h.svc.ListBackups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list backups"})
		return
	}
	c.JSON(http.StatusOK, infos)
}

func (h *Handler) DownloadBackup(c *gin.Context) {
	filename := c.Param("filename")
	data, err := h.svc.ReadBackup(c.Request.Context(), filename)
	if errors.Is(err, ErrInvalidName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid backup filename"})
		return
	}
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "backup not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read backup"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/json", data)
}

func (h *Handler) DeleteBackup(c *gin.Context) {
	err := h.svc.DeleteBackup(c.Request.Context(), c.Param("filename"))
	if errors.Is(err, ErrInvalidName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid backup filename"})
		return
	}
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "backup not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete backup"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "backup deleted"})
}

func (h *Handler) RestoreBackup(c *gin.Context) {
	err := h.svc.RestoreBackup(c.Request.Context(), c.Param("filename"), actorID(c), c.ClientIP())
	if errors.Is(err, ErrInvalidName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid backup filename"})
		return
	}
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "backup not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to restore backup"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "backup restored"})
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
