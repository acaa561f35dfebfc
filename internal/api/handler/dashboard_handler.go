package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// DashboardHandler exposes the single aggregation route the dashboard loads.
type DashboardHandler struct {
	dashboardService ports.DashboardService
}

func NewDashboardHandler(dashboardService ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Data returns the role-conditioned dashboard payload.
//
// @Summary      Dashboard aggregation
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardData
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/dashboard/data [get]
func (h *DashboardHandler) Data(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	data, err := h.dashboardService.GetData(c.Request().Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User profile not found. Please complete your profile."})
		}
		return err
	}

	return c.JSON(http.StatusOK, data)
}
