package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/http/response"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/ctxutil"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/services"
)

type RecordingHandler struct {
	recordingService services.RecordingService
	approvalService  services.ApprovalService
}

func NewRecordingHandler(recordingService services.RecordingService, approvalService services.ApprovalService) *RecordingHandler {
	return &RecordingHandler{
		recordingService: recordingService,
		approvalService:  approvalService,
	}
}

// POST /api/recordings/sessions
func (h *RecordingHandler) CreateSession(c *gin.Context) {
	var session domain.RecordingSession
	if err := c.ShouldBindJSON(&session); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := h.recordingService.CreateSession(c.Request.Context(), &session)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"session": created})
}

// GET /api/recordings/sessions?shabad_id=&status=&artist_id=&location=&limit=&offset=
func (h *RecordingHandler) ListSessions(c *gin.Context) {
	filter := repos.SessionFilter{
		Status:   c.Query("status"),
		Location: c.Query("location"),
	}
	if raw := c.Query("shabad_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		filter.ShabadID = id
	}
	if raw := c.Query("artist_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		filter.ArtistID = id
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	sessions, total, err := h.recordingService.ListSessions(c.Request.Context(), filter)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sessions": sessions, "total": total})
}

// GET /api/recordings/sessions/:sessionId
func (h *RecordingHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	session, err := h.recordingService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

// PUT /api/recordings/sessions/:sessionId
func (h *RecordingHandler) UpdateSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	session, err := h.recordingService.UpdateSession(c.Request.Context(), id, updates)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

// POST /api/recordings/sessions/:sessionId/tracks
func (h *RecordingHandler) AddTrack(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var track domain.Track
	if err := c.ShouldBindJSON(&track); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	track.SessionID = sessionID
	if track.PerformerID == uuid.Nil {
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			track.PerformerID = rd.UserID
		}
	}

	created, approval, err := h.recordingService.AddTrack(c.Request.Context(), &track)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"track": created, "approval": approval})
}

// GET /api/recordings/sessions/:sessionId/tracks
func (h *RecordingHandler) SessionTracks(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tracks, err := h.recordingService.SessionTracks(c.Request.Context(), sessionID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tracks": tracks})
}

// GET /api/recordings/tracks?session_id=&performer_id=&shabad_id=&limit=&offset=
func (h *RecordingHandler) ListTracks(c *gin.Context) {
	var filter repos.TrackFilter
	parseID := func(param string, dst *uuid.UUID) bool {
		raw := c.Query(param)
		if raw == "" {
			return true
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return false
		}
		*dst = id
		return true
	}
	if !parseID("session_id", &filter.SessionID) ||
		!parseID("performer_id", &filter.PerformerID) ||
		!parseID("shabad_id", &filter.ShabadID) {
		return
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	tracks, total, err := h.recordingService.ListTracks(c.Request.Context(), filter)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tracks": tracks, "total": total})
}

// GET /api/recordings/pending-approvals — the caller's own claim pool.
func (h *RecordingHandler) PendingApprovals(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", apperrors.ErrUnauthorized)
		return
	}
	pending, err := h.approvalService.PendingForApprover(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"pending_approvals": pending})
}

// DELETE /api/recordings/tracks/:trackId
func (h *RecordingHandler) DeleteTrack(c *gin.Context) {
	id, err := uuid.Parse(c.Param("trackId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.recordingService.DeleteTrack(c.Request.Context(), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
