package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/innowise/auth-service/internal/core/domain"
	"github.com/innowise/auth-service/internal/core/ports"
)

type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type promoteResponse struct {
	UserID   int64       `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// Promote raises a user to ADMIN. Idempotent.
//
// @Summary      Promote user to ADMIN
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  promoteResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/admin/users/{id}/promote [post]
func (h *AdminHandler) Promote(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.adminService.Promote(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, promoteResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}
