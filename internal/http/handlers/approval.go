package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/http/response"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/ctxutil"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/services"
)

type ApprovalHandler struct {
	approvalService services.ApprovalService
	intakeService   services.IntakeService
}

func NewApprovalHandler(approvalService services.ApprovalService, intakeService services.IntakeService) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
		intakeService:   intakeService,
	}
}

// GET /api/approvals/pending/:approverId
func (h *ApprovalHandler) Pending(c *gin.Context) {
	approverID, err := uuid.Parse(c.Param("approverId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	pending, err := h.approvalService.PendingForApprover(c.Request.Context(), approverID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"pending_approvals": pending})
}

// POST /api/approvals/decision
func (h *ApprovalHandler) Decide(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", apperrors.ErrUnauthorized)
		return
	}

	var req struct {
		ApprovalID    uuid.UUID `json:"approval_id" binding:"required"`
		Status        string    `json:"status" binding:"required"`
		Comments      string    `json:"comments"`
		RevisionNotes string    `json:"revision_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	decided, err := h.approvalService.Decide(c.Request.Context(), services.DecideInput{
		ApprovalID:    req.ApprovalID,
		ApproverID:    rd.UserID,
		ApproverRole:  rd.Role,
		Status:        req.Status,
		Comments:      req.Comments,
		RevisionNotes: req.RevisionNotes,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"approval": decided})
}

// PUT /api/approvals/assign/:approvalId
func (h *ApprovalHandler) Assign(c *gin.Context) {
	approvalID, err := uuid.Parse(c.Param("approvalId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var req struct {
		ApproverID uuid.UUID `json:"approver_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	// Default to self-claim.
	if req.ApproverID == uuid.Nil {
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			req.ApproverID = rd.UserID
		}
	}

	assigned, err := h.approvalService.Assign(c.Request.Context(), approvalID, req.ApproverID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"approval": assigned})
}

// GET /api/approvals/history/:itemType/:itemId
func (h *ApprovalHandler) History(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	history, err := h.approvalService.History(c.Request.Context(), c.Param("itemType"), itemID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"history": history})
}

// GET /api/approvals/statistics
func (h *ApprovalHandler) Statistics(c *gin.Context) {
	stats, err := h.approvalService.Statistics(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"statistics": stats})
}

// POST /api/approvals/mixed-track
func (h *ApprovalHandler) SubmitMixedTrack(c *gin.Context) {
	var req struct {
		SessionID       uuid.UUID      `json:"session_id" binding:"required"`
		MixVersion      int            `json:"mix_version"`
		MixNotes        string         `json:"mix_notes"`
		TechnicalSpecs  datatypes.JSON `json:"technical_specs"`
		StorageKey      string         `json:"storage_key" binding:"required"`
		StorageBucket   string         `json:"storage_bucket"`
		FileSizeMB      float64        `json:"file_size_mb"`
		DurationSeconds float64        `json:"duration_seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", apperrors.ErrUnauthorized)
		return
	}

	mix := &domain.MixedTrack{
		SessionID:       req.SessionID,
		MixerID:         rd.UserID,
		MixVersion:      req.MixVersion,
		MixNotes:        req.MixNotes,
		TechnicalSpecs:  req.TechnicalSpecs,
		StorageKey:      req.StorageKey,
		StorageBucket:   req.StorageBucket,
		FileSizeMB:      req.FileSizeMB,
		DurationSeconds: req.DurationSeconds,
	}
	created, approval, err := h.intakeService.SubmitMixedTrack(c.Request.Context(), mix)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"mixed_track": created, "approval": approval})
}

// POST /api/approvals/narrator-recording
func (h *ApprovalHandler) SubmitNarratorRecording(c *gin.Context) {
	var rec domain.NarratorRecording
	if err := c.ShouldBindJSON(&rec); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if rec.NarratorID == uuid.Nil {
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			rec.NarratorID = rd.UserID
		}
	}
	created, approval, err := h.intakeService.SubmitNarratorRecording(c.Request.Context(), &rec)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"narrator_recording": created, "approval": approval})
}

// POST /api/approvals/final-composition
func (h *ApprovalHandler) SubmitFinalComposition(c *gin.Context) {
	var comp domain.FinalComposition
	if err := c.ShouldBindJSON(&comp); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if comp.FinalMixerID == uuid.Nil {
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			comp.FinalMixerID = rd.UserID
		}
	}
	created, approval, err := h.intakeService.SubmitFinalComposition(c.Request.Context(), &comp)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"final_composition": created, "approval": approval})
}

// DELETE /api/approvals/item/:itemType/:itemId — admin cleanup of a
// submitted artifact and its approval history.
func (h *ApprovalHandler) DeleteArtifact(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.intakeService.DeleteArtifact(c.Request.Context(), c.Param("itemType"), itemID); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
