package catalog

import (
	"errors"
	"net/http"
	"strings"

	"tobaccoform/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	MsgAdded     = "Tobacco successfully added"
	MsgDuplicate = "Tobacco already exists"
)

// Handler serves the tobacco catalog API. Write endpoints answer in plain
// text because the entry form shows the body to the operator verbatim.
type Handler struct {
	store  Store
	logger *zap.Logger
}

func NewHandler(store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Register(e *echo.Echo) {
	g := e.Group("/api/tobacco")
	g.GET("/brands", h.Brands)
	g.GET("/", h.List)
	g.POST("/", h.Create)
	g.GET("/:brand", h.ByBrand)
}

// Brands returns the known brands as a JSON array of strings.
func (h *Handler) Brands(c echo.Context) error {
	brands, err := h.store.ListBrands(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list brands", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list brands")
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *Handler) List(c echo.Context) error {
	records, err := h.store.ListTobacco(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list tobacco", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tobacco")
	}
	if len(records) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No tobacco found in the database")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": records})
}

func (h *Handler) ByBrand(c echo.Context) error {
	brand := c.Param("brand")
	records, err := h.store.TobaccoByBrand(c.Request().Context(), brand)
	if err != nil {
		h.logger.Error("Failed to look up brand", zap.String("brand", brand), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to look up brand")
	}
	if len(records) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Tobacco with the given brand not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": records})
}

func (h *Handler) Create(c echo.Context) error {
	var record models.TobaccoRecord
	if err := c.Bind(&record); err != nil {
		return c.String(http.StatusBadRequest, "Invalid tobacco payload")
	}
	record.Brand = strings.TrimSpace(record.Brand)
	if record.Brand == "" {
		return c.String(http.StatusBadRequest, "Brand is required")
	}
	if !record.Taste.Valid() {
		return c.String(http.StatusBadRequest, "Unknown taste: "+string(record.Taste))
	}

	err := h.store.InsertTobacco(c.Request().Context(), record)
	switch {
	case errors.Is(err, ErrDuplicate):
		h.logger.Info("Duplicate tobacco rejected", zap.String("brand", record.Brand), zap.String("flavour", record.Flavour))
		return c.String(http.StatusConflict, MsgDuplicate)
	case err != nil:
		h.logger.Error("Failed to insert tobacco", zap.String("brand", record.Brand), zap.Error(err))
		return c.String(http.StatusInternalServerError, "Failed to add tobacco")
	}

	h.logger.Info("Tobacco added",
		zap.String("brand", record.Brand),
		zap.String("taste", string(record.Taste)),
		zap.String("flavour", record.Flavour))
	return c.String(http.StatusCreated, MsgAdded)
}
