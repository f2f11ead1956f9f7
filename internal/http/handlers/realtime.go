package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/http/response"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/ctxutil"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
	"github.com/raagrecording/raagrecording-backend/internal/realtime"
)

type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.SSEHub

	mu      sync.RWMutex
	clients map[uuid.UUID]*realtime.SSEClient // one stream per user
}

func NewRealtimeHandler(baseLog *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{
		log:     baseLog.With("handler", "RealtimeHandler"),
		hub:     hub,
		clients: make(map[uuid.UUID]*realtime.SSEClient),
	}
}

// GET /sse/stream — connecting auto-joins the user's own channel and their
// role queue channel.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", apperrors.ErrUnauthorized)
		return
	}

	h.mu.Lock()
	if existing, ok := h.clients[rd.UserID]; ok {
		h.hub.CloseClient(existing)
		delete(h.clients, rd.UserID)
	}
	client := h.hub.NewSSEClient(rd.UserID)
	h.clients[rd.UserID] = client
	h.mu.Unlock()

	h.hub.AddChannel(client, realtime.UserChannel(rd.UserID))
	h.hub.AddChannel(client, realtime.RoleChannel(rd.Role))
	h.hub.AddChannel(client, realtime.BroadcastChannel)

	h.log.Info("SSE stream open", "user_id", rd.UserID.String(), "role", rd.Role)
	h.hub.ServeHTTP(c.Writer, c.Request, client)

	// A reconnect may have replaced our map entry with a newer client; only
	// evict the entry if it is still ours.
	h.mu.Lock()
	if h.clients[rd.UserID] == client {
		delete(h.clients, rd.UserID)
	}
	h.mu.Unlock()
	h.hub.CloseClient(client)
}

// POST /sse/subscribe — join a shabad discussion channel.
func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	client, shabadID, ok := h.clientAndShabad(c)
	if !ok {
		return
	}
	h.hub.AddChannel(client, realtime.ShabadChannel(shabadID))
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /sse/unsubscribe
func (h *RealtimeHandler) Unsubscribe(c *gin.Context) {
	client, shabadID, ok := h.clientAndShabad(c)
	if !ok {
		return
	}
	h.hub.RemoveChannel(client, realtime.ShabadChannel(shabadID))
	response.RespondOK(c, gin.H{"ok": true})
}

func (h *RealtimeHandler) clientAndShabad(c *gin.Context) (*realtime.SSEClient, uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", apperrors.ErrUnauthorized)
		return nil, uuid.Nil, false
	}

	var req struct {
		ShabadID uuid.UUID `json:"shabad_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return nil, uuid.Nil, false
	}

	h.mu.RLock()
	client, ok := h.clients[rd.UserID]
	h.mu.RUnlock()
	if !ok {
		response.RespondError(c, http.StatusConflict, "no_active_stream", apperrors.ErrConflict)
		return nil, uuid.Nil, false
	}
	return client, req.ShabadID, true
}
