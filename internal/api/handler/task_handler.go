package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// TaskHandler exposes the credit-claim route.
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type claimRequest struct {
	TaskID string `json:"taskId"`
}

type claimResponse struct {
	Message          string `json:"message"`
	NewCreditBalance int    `json:"newCreditBalance"`
}

// ClaimCredits awards a task's credits to the authenticated user.
//
// @Summary      Claim task credits
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      claimRequest  true  "Task to claim"
// @Success      200   {object}  claimResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/tasks/claim-credits [post]
func (h *TaskHandler) ClaimCredits(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req claimRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if req.TaskID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Task ID is required."})
	}

	result, err := h.taskService.ClaimCredits(c.Request().Context(), user.ID, req.TaskID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownTask):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Task definition not found."})
		case errors.Is(err, domain.ErrTaskAlreadyClaimed):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Credits for this task already claimed."})
		case errors.Is(err, domain.ErrProfileNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User profile not found for validation."})
		case errors.Is(err, domain.ErrTaskNotComplete):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Task not yet completed or validation failed."})
		}
		return err
	}

	return c.JSON(http.StatusOK, claimResponse{
		Message:          result.Message,
		NewCreditBalance: result.NewBalance,
	})
}
