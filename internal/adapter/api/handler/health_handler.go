package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"trailtrade/internal/infrastructure/blobstore"
)

type HealthHandler struct {
	store blobstore.Store
}

var healthHandler *HealthHandler

func NewHealthHandler(store blobstore.Store) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

func SetupHealthHandler(store blobstore.Store) {
	healthHandler = NewHealthHandler(store)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// CheckStorageHealth probes the blob store with a read. A missing probe key
// still proves the store answers.
func (h *HealthHandler) CheckStorageHealth(c echo.Context) error {
	_, err := h.store.Load(c.Request().Context(), "health-probe")
	if err != nil && err != blobstore.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "Storage connection failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Storage connected successfully",
	})
}
