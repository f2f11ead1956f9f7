package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/http/response"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/ctxutil"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/services"
)

type CommunicationHandler struct {
	commService services.CommunicationService
}

func NewCommunicationHandler(commService services.CommunicationService) *CommunicationHandler {
	return &CommunicationHandler{commService: commService}
}

// POST /api/communications/send
func (h *CommunicationHandler) Send(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", apperrors.ErrUnauthorized)
		return
	}
	var comm domain.Communication
	if err := c.ShouldBindJSON(&comm); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	comm.FromUserID = rd.UserID

	sent, err := h.commService.Send(c.Request.Context(), &comm)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"communication": sent})
}

// GET /api/communications/user/:userId?unread_only=true
func (h *CommunicationHandler) Inbox(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	unreadOnly := c.Query("unread_only") == "true"

	comms, err := h.commService.Inbox(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"communications": comms})
}

// GET /api/communications/thread/:itemType/:itemId
func (h *CommunicationHandler) Thread(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	comms, err := h.commService.Thread(c.Request.Context(), c.Param("itemType"), itemID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"communications": comms})
}

// PUT /api/communications/read/:communicationId
func (h *CommunicationHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("communicationId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	comm, err := h.commService.MarkRead(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"communication": comm})
}
