package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/propdesk/property-api/internal/model"
	"github.com/propdesk/property-api/internal/repository"
)

// PropertyHandler stores and serves property, unit and lease records. No
// lifecycle rules are applied here beyond storage; this mirrors the rest of
// the platform treating these tables as plain inventory.
type PropertyHandler struct {
	Properties *repository.PropertyRepo
	Leases     *repository.LeaseRepo
}

func NewPropertyHandler(p *repository.PropertyRepo, l *repository.LeaseRepo) *PropertyHandler {
	return &PropertyHandler{Properties: p, Leases: l}
}

// ----- DTOs -----

type propertyReq struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	ZipCode     string  `json:"zipCode"`
	Description string  `json:"description"`
	TotalArea   float64 `json:"totalArea"`
}

type unitReq struct {
	UnitNumber  string  `json:"unitNumber"`
	Area        float64 `json:"area"`
	Rent        float64 `json:"rent"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
}

type leaseReq struct {
	TenantID        uint64  `json:"tenantId"`
	StartDate       string  `json:"startDate"` // YYYY-MM-DD
	EndDate         string  `json:"endDate"`   // YYYY-MM-DD
	MonthlyRent     float64 `json:"monthlyRent"`
	SecurityDeposit float64 `json:"securityDeposit"`
	Terms           string  `json:"terms"`
	IsRenewable     bool    `json:"isRenewable"`
}

// CreateProperty stores a new property owned by the authenticated user.
func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Address) == "" ||
		strings.TrimSpace(req.City) == "" || strings.TrimSpace(req.State) == "" ||
		strings.TrimSpace(req.ZipCode) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, address, city, state and zipCode are required"})
	}
	ptype := strings.ToLower(strings.TrimSpace(req.Type))
	if ptype == "" {
		ptype = model.PropertyResidential
	}
	if !model.ValidPropertyType(ptype) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property type"})
	}
	ownerID, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	p := model.Property{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(req.Title),
		Type:        ptype,
		Price:       req.Price,
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		State:       strings.TrimSpace(req.State),
		ZipCode:     strings.TrimSpace(req.ZipCode),
		Description: strings.TrimSpace(req.Description),
		TotalArea:   req.TotalArea,
		IsActive:    true,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Properties.CreateProperty(ctx, &p); err != nil {
		c.Logger().Errorf("create property failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusCreated, p)
}

// ListProperties returns all active properties. Responses on this route are
// cached by the Redis cache middleware.
func (h *PropertyHandler) ListProperties(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	props, err := h.Properties.ListProperties(ctx)
	if err != nil {
		c.Logger().Errorf("list properties failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if props == nil {
		props = []model.Property{}
	}
	return c.JSON(http.StatusOK, props)
}

// GetProperty returns a single property by id.
func (h *PropertyHandler) GetProperty(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Properties.GetProperty(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		c.Logger().Errorf("get property failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, p)
}

// CreateUnit stores a unit under an existing property.
func (h *PropertyHandler) CreateUnit(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req unitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.UnitNumber) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unitNumber required"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.UnitAvailable
	}
	if !model.ValidUnitStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Properties.GetProperty(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		c.Logger().Errorf("load property failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	u := model.Unit{
		PropertyID:  propertyID,
		UnitNumber:  strings.TrimSpace(req.UnitNumber),
		Area:        req.Area,
		Rent:        req.Rent,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Status:      status,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
	}
	if err := h.Properties.CreateUnit(ctx, &u); err != nil {
		c.Logger().Errorf("create unit failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusCreated, u)
}

// ListUnits returns all units of a property.
func (h *PropertyHandler) ListUnits(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	units, err := h.Properties.ListUnits(ctx, propertyID)
	if err != nil {
		c.Logger().Errorf("list units failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if units == nil {
		units = []model.Unit{}
	}
	return c.JSON(http.StatusOK, units)
}

// CreateLease stores a lease against an existing unit.
func (h *PropertyHandler) CreateLease(c echo.Context) error {
	unitID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req leaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TenantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenantId required"})
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startDate must be YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil || !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endDate must be YYYY-MM-DD and after startDate"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Properties.GetUnit(ctx, unitID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unit not found"})
		}
		c.Logger().Errorf("load unit failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	l := model.Lease{
		UnitID:          unitID,
		TenantID:        req.TenantID,
		StartDate:       start,
		EndDate:         end,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		Status:          model.LeasePending,
		Terms:           strings.TrimSpace(req.Terms),
		IsRenewable:     req.IsRenewable,
		IsActive:        true,
	}
	if err := h.Leases.CreateLease(ctx, &l); err != nil {
		c.Logger().Errorf("create lease failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusCreated, l)
}

// ListLeases returns all leases recorded against a unit.
func (h *PropertyHandler) ListLeases(c echo.Context) error {
	unitID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	leases, err := h.Leases.ListByUnit(ctx, unitID)
	if err != nil {
		c.Logger().Errorf("list leases failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if leases == nil {
		leases = []model.Lease{}
	}
	return c.JSON(http.StatusOK, leases)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
