package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/propdesk/property-api/internal/model"
	"github.com/propdesk/property-api/internal/repository"
)

// UserHandler serves the admin users listing.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: u}
}

type listedUser struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// List returns a filtered, paginated page of users. Supported query
// parameters: page, limit, role, isActive, search.
func (h *UserHandler) List(c echo.Context) error {
	f := repository.ListFilter{
		Page:  atoiDefault(c.QueryParam("page"), 1),
		Limit: atoiDefault(c.QueryParam("limit"), 10),
	}
	if role := strings.TrimSpace(c.QueryParam("role")); role != "" {
		if !model.ValidRole(role) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
		}
		f.Role = role
	}
	if active := c.QueryParam("isActive"); active != "" {
		b := active == "true"
		f.IsActive = &b
	}
	f.Search = strings.TrimSpace(c.QueryParam("search"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.Users.List(ctx, f)
	if err != nil {
		c.Logger().Errorf("list users failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	out := make([]listedUser, 0, len(users))
	for _, u := range users {
		out = append(out, listedUser{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
			Role:      u.Role,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": out,
		"pagination": echo.Map{
			"total":      total,
			"page":       f.Page,
			"limit":      f.Limit,
			"totalPages": int(math.Ceil(float64(total) / float64(f.Limit))),
		},
	})
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
