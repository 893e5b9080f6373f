package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calebryder/ai-governance/internal/application/service"
	"github.com/calebryder/ai-governance/internal/domain/entity"
	"github.com/calebryder/ai-governance/internal/report"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	proposalService service.ProposalService
	auditService    service.AuditService
	exporter        *report.Exporter
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	proposalService service.ProposalService,
	auditService service.AuditService,
	exporter *report.Exporter,
	logger Logger,
) *Handlers {
	return &Handlers{
		proposalService: proposalService,
		auditService:    auditService,
		exporter:        exporter,
		logger:          logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ROIPreviewRequest is the body of POST /api/roi/preview
type ROIPreviewRequest struct {
	TimeSavings []entity.TimeSavingEntry `json:"time_savings" binding:"required"`
	Cost        float64                  `json:"cost" binding:"min=0"`
}

// ROIPreviewResponse mirrors entity.ROISummary with a JSON-safe payback
// field: +Inf serializes as null.
type ROIPreviewResponse struct {
	WeeklyValue   float64                    `json:"weekly_value"`
	AnnualValue   float64                    `json:"annual_value"`
	ROIPercent    float64                    `json:"roi_percent"`
	PaybackMonths *float64                   `json:"payback_months"`
	Breakdown     []entity.LevelContribution `json:"breakdown"`
}

// ActualValueRequest is the body of POST /api/proposals/:id/actual
type ActualValueRequest struct {
	ActualAnnualValue float64 `json:"actual_annual_value"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ListProposalsRequest represents query parameters for listing proposals
type ListProposalsRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ListProposals handles GET /api/proposals
func (h *Handlers) ListProposals(c *gin.Context) {
	var req ListProposalsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	proposals, err := h.proposalService.ListProposals(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Failed to list proposals", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve proposals",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    proposals,
	})
}

// GetProposal handles GET /api/proposals/:id
func (h *Handlers) GetProposal(c *gin.Context) {
	id, ok := h.proposalID(c)
	if !ok {
		return
	}

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get proposal", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve proposal",
		})
		return
	}
	if proposal == nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "proposal not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    proposal,
	})
}

// EvaluateProposal handles POST /api/proposals/:id/evaluate
func (h *Handlers) EvaluateProposal(c *gin.Context) {
	id, ok := h.proposalID(c)
	if !ok {
		return
	}

	result, err := h.proposalService.Evaluate(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Evaluation failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "evaluation failed",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// RecordActual handles POST /api/proposals/:id/actual
func (h *Handlers) RecordActual(c *gin.Context) {
	id, ok := h.proposalID(c)
	if !ok {
		return
	}

	var req ActualValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	variance, err := h.proposalService.RecordActual(c.Request.Context(), id, req.ActualAnnualValue)
	if err != nil {
		h.logger.Error("Failed to record actual value", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to record actual value",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"variance_percent": variance},
	})
}

// GetAuditTrail handles GET /api/proposals/:id/audit
func (h *Handlers) GetAuditTrail(c *gin.Context) {
	id, ok := h.proposalID(c)
	if !ok {
		return
	}

	entries, err := h.auditService.ListByProposal(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get audit trail", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve audit trail",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    entries,
	})
}

// PreviewROI handles POST /api/roi/preview
func (h *Handlers) PreviewROI(c *gin.Context) {
	var req ROIPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid ROI preview request", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	summary, err := h.proposalService.ComputeROI(c.Request.Context(), req.TimeSavings, req.Cost)
	if err != nil {
		h.logger.Error("ROI computation failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to compute ROI",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toROIResponse(summary),
	})
}

// ExportDecisionRegister handles GET /api/reports/decisions
func (h *Handlers) ExportDecisionRegister(c *gin.Context) {
	data, err := h.exporter.DecisionRegister(c.Request.Context())
	if err != nil {
		h.logger.Error("Decision register export failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to export decision register",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="decision_register.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// proposalID parses the :id path parameter, writing the error response itself
func (h *Handlers) proposalID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid proposal ID", "id", idStr, "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid proposal ID",
		})
		return 0, false
	}
	return id, true
}

func toROIResponse(summary entity.ROISummary) ROIPreviewResponse {
	resp := ROIPreviewResponse{
		WeeklyValue: summary.WeeklyValue,
		AnnualValue: summary.AnnualValue,
		ROIPercent:  summary.ROIPercent,
		Breakdown:   summary.Breakdown,
	}
	if !math.IsInf(summary.PaybackMonths, 1) {
		resp.PaybackMonths = &summary.PaybackMonths
	}
	return resp
}
