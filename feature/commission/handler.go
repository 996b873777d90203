package commission

import (
	"errors"
	"strings"

	"commission-comparer/core/logger"
	"commission-comparer/feature/report"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReconcileRequest is the body of a bucket reconciliation request.
type ReconcileRequest struct {
	// SourceA and SourceB are object prefixes inside the configured bucket.
	SourceA string `json:"source_a"`
	SourceB string `json:"source_b"`
	// Margin overrides the configured tolerance when set.
	Margin *float64 `json:"margin,omitempty"`
}

// Handler handles HTTP requests for reconciliation runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Get("/kinds", h.HandleKinds)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id", h.HandleGetRun)
	group.Post("/:kind", h.HandleReconcile)
}

// HandleKinds lists the supported document kinds.
// @Summary List Document Kinds
// @Description Returns the statement kinds that can be reconciled.
// @Tags reconcile
// @Produce json
// @Success 200 {object} map[string][]string "Kinds"
// @Router /reconcile/kinds [get]
func (h *Handler) HandleKinds(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"kinds": Kinds()})
}

// HandleReconcile reconciles two bucket prefixes.
// @Summary Reconcile Statements
// @Description Compares every statement under source_a with its counterpart under source_b and returns the discrepancy report. The workbook is published to the bucket and the run saved when history is enabled.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param kind path string true "Document kind"
// @Param request body ReconcileRequest true "Sources"
// @Success 200 {object} Result "Reconciliation result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/{kind} [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	kind := c.Params("kind")

	if _, err := Lookup(kind); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.SourceA = strings.TrimSpace(req.SourceA)
	req.SourceB = strings.TrimSpace(req.SourceB)
	if req.SourceA == "" || req.SourceB == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "source_a and source_b are required"})
	}
	margin := h.service.DefaultMargin()
	if req.Margin != nil {
		if *req.Margin < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "margin must not be negative"})
		}
		margin = *req.Margin
	}

	a, b, err := h.service.BucketSources(req.SourceA, req.SourceB)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := h.service.Run(c.Context(), kind, a, b, margin)
	if err != nil {
		l.Error("Reconciliation failed", zap.String("kind", kind), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

// HandleListRuns lists recent runs.
// @Summary List Runs
// @Description Returns the most recent reconciliation runs without their discrepancies.
// @Tags reconcile
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {array} report.Run "Runs"
// @Failure 503 {object} map[string]string "History not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	runs, err := h.service.Runs(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		return h.historyError(c, err)
	}
	return c.JSON(runs)
}

// HandleGetRun returns one run with its discrepancies.
// @Summary Get Run
// @Description Returns a reconciliation run and every discrepancy it recorded.
// @Tags reconcile
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} report.Run "Run"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "History not configured"
// @Router /reconcile/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	run, err := h.service.GetRun(c.Context(), c.Params("id"))
	if err != nil {
		return h.historyError(c, err)
	}
	return c.JSON(run)
}

func (h *Handler) historyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrHistoryDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, report.ErrRunNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Run history query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
