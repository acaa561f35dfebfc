package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// LeadHandler exposes lead deletion, the per-lead application count, and the
// not-yet-implemented creation route.
type LeadHandler struct {
	leadService ports.LeadService
}

func NewLeadHandler(leadService ports.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Delete removes a lead owned by the authenticated user.
//
// @Summary      Delete a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	leadID := c.Param("id")
	// A non-UUID id cannot match any row; answer as the store would.
	if _, err := uuid.Parse(leadID); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Lead not found."})
	}

	if err := h.leadService.Delete(c.Request().Context(), user.ID, leadID); err != nil {
		switch {
		case errors.Is(err, domain.ErrLeadNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Lead not found."})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden: You are not authorized to delete this lead."})
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Lead deleted successfully."})
}

// ApplicationCount returns how many applications a lead has received together
// with the static per-lead cap.
//
// @Summary      Count applications on a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        leadId  path      string  true  "Lead id"
// @Success      200     {object}  ports.ApplicationCount
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/leads/{leadId}/application-count [get]
func (h *LeadHandler) ApplicationCount(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	leadID := c.Param("leadId")
	if _, err := uuid.Parse(leadID); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid lead id"})
	}

	result, err := h.leadService.ApplicationCount(c.Request().Context(), leadID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Create is a placeholder; lead creation still happens elsewhere.
//
// @Summary      Create a lead (not implemented)
// @Tags         leads
// @Security     BearerAuth
// @Failure      501  {object}  map[string]string
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	return c.JSON(http.StatusNotImplemented, map[string]string{"message": "Create lead endpoint not yet implemented."})
}
