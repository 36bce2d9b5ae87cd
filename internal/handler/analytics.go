package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	analyticsapp "github.com/keisys/teppan-register/internal/analytics/app"
)

type AnalyticsHandler struct {
	Svc *analyticsapp.Service
}

func NewAnalyticsHandler(svc *analyticsapp.Service) *AnalyticsHandler {
	return &AnalyticsHandler{Svc: svc}
}

func (h *AnalyticsHandler) Report(c echo.Context) error {
	var opts analyticsapp.Options

	if raw := c.QueryParam("bucket"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "bucket must be a number", "code": "INVALID_BUCKET"})
		}
		opts.BucketMinutes = n
	}

	report, err := h.Svc.Report(c.Request().Context(), opts)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) CoPurchase(c echo.Context) error {
	target := c.QueryParam("item")
	if target == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item required", "code": "BAD_REQUEST"})
	}

	result, err := h.Svc.CoPurchase(c.Request().Context(), target)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
