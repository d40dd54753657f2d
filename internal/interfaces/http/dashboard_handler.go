package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/pos-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
	"github.com/jhoicas/pos-dashboard-api/internal/domain"
)

// DashboardService lo implementa appanalytics.DashboardUseCase.
type DashboardService interface {
	GetMetrics(ctx context.Context, q appanalytics.MetricsQuery) (*dto.DashboardMetricsResponse, error)
	ExportPDF(ctx context.Context, q appanalytics.MetricsQuery) (pdf []byte, filename string, err error)
}

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc DashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc DashboardService) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetMetrics godoc
// @Summary      Métricas del dashboard
// @Description  Ventas, utilidad, garantías, cartera e inventario del periodo. Los roles sin historial siempre reciben el día actual.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        filter  query  string  false  "today | specific | all"  default(today)
// @Param        date    query  string  false  "YYYY-MM-DD (filter=specific)"
// @Param        year    query  int     false  "año (filter=all); por defecto el actual"
// @Success      200  {object}  dto.DashboardMetricsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/dashboard/metrics [get]
func (h *DashboardHandler) GetMetrics(c *fiber.Ctx) error {
	q, ok, err := h.parseQuery(c)
	if !ok {
		return err
	}
	resp, err := h.uc.GetMetrics(c.UserContext(), q)
	if err != nil {
		return dashboardError(c, err)
	}
	if resp.Stale {
		c.Set("Warning", `110 - "métricas del último refresco exitoso"`)
	}
	return c.JSON(resp)
}

// GetReport godoc
// @Summary      Reporte PDF del dashboard
// @Tags         dashboard
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        filter  query  string  false  "today | specific | all"
// @Param        date    query  string  false  "YYYY-MM-DD (filter=specific)"
// @Param        year    query  int     false  "año (filter=all)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/report.pdf [get]
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	q, ok, err := h.parseQuery(c)
	if !ok {
		return err
	}
	pdf, filename, err := h.uc.ExportPDF(c.UserContext(), q)
	if err != nil {
		return dashboardError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

func (h *DashboardHandler) parseQuery(c *fiber.Ctx) (appanalytics.MetricsQuery, bool, error) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return appanalytics.MetricsQuery{}, false, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}
	var in dto.DashboardMetricsRequest
	if err := c.QueryParser(&in); err != nil {
		return appanalytics.MetricsQuery{}, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros inválidos: " + err.Error(),
		})
	}
	in.Filter = strings.ToLower(strings.TrimSpace(in.Filter))
	in.Date = strings.TrimSpace(in.Date)
	if ok, err := validateStruct(c, "INVALID_PARAMS", &in); !ok {
		return appanalytics.MetricsQuery{}, false, err
	}
	return appanalytics.MetricsQuery{
		CompanyID: companyID,
		Role:      GetRole(c),
		Filter:    in.Filter,
		Date:      in.Date,
		Year:      in.Year,
	}, true, nil
}

func dashboardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidFilter), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrRefreshInProgress):
		c.Set(fiber.HeaderRetryAfter, "2")
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REFRESH_IN_PROGRESS", Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "el cálculo del dashboard no terminó a tiempo"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
