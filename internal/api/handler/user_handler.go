package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// UserHandler exposes the profile-details lookup used by the frontend's
// profile proxy.
type UserHandler struct {
	profileService ports.ProfileService
}

func NewUserHandler(profileService ports.ProfileService) *UserHandler {
	return &UserHandler{profileService: profileService}
}

type profileDetailsRequest struct {
	TargetUserID string `json:"targetUserId"`
}

type profileDetailsResponse struct {
	Profile *domain.Profile `json:"profile"`
}

// GetProfileDetails resolves a profile for any user id, falling through the
// lookup tiers the service defines.
//
// @Summary      Fetch profile details for a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileDetailsRequest  true  "Target user"
// @Success      200   {object}  profileDetailsResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users/get-profile-details [post]
func (h *UserHandler) GetProfileDetails(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req profileDetailsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if req.TargetUserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Target User ID (targetUserId) is required."})
	}
	if _, err := uuid.Parse(req.TargetUserID); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid target user id"})
	}

	profile, err := h.profileService.GetDetails(c.Request().Context(), req.TargetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found."})
		}
		return err
	}

	return c.JSON(http.StatusOK, profileDetailsResponse{Profile: profile})
}
