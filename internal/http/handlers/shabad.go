package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/http/response"
	"github.com/raagrecording/raagrecording-backend/internal/services"
)

type ShabadHandler struct {
	shabadService services.ShabadService
}

func NewShabadHandler(shabadService services.ShabadService) *ShabadHandler {
	return &ShabadHandler{shabadService: shabadService}
}

// POST /api/shabads
func (h *ShabadHandler) Create(c *gin.Context) {
	var shabad domain.Shabad
	if err := c.ShouldBindJSON(&shabad); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := h.shabadService.Create(c.Request.Context(), &shabad)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"shabad": created})
}

// GET /api/shabads?limit=&offset=
func (h *ShabadHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	shabads, total, err := h.shabadService.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"shabads": shabads, "total": total})
}

// GET /api/shabads/:shabadId
func (h *ShabadHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("shabadId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	shabad, err := h.shabadService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"shabad": shabad})
}

// PUT /api/shabads/:shabadId
func (h *ShabadHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("shabadId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	shabad, err := h.shabadService.Update(c.Request.Context(), id, updates)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"shabad": shabad})
}

// GET /api/shabads/:shabadId/progress
func (h *ShabadHandler) Progress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("shabadId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	progress, err := h.shabadService.Progress(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": progress})
}

// GET /api/shabads/raags/all
func (h *ShabadHandler) Raags(c *gin.Context) {
	raags, err := h.shabadService.Raags(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"raags": raags})
}

// GET /api/shabads/raag/:raagId
func (h *ShabadHandler) ByRaag(c *gin.Context) {
	raagID, err := uuid.Parse(c.Param("raagId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	shabads, err := h.shabadService.ByRaag(c.Request.Context(), raagID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"shabads": shabads})
}

// POST /api/shabads/raags
func (h *ShabadHandler) CreateRaag(c *gin.Context) {
	var raag domain.Raag
	if err := c.ShouldBindJSON(&raag); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := h.shabadService.CreateRaag(c.Request.Context(), &raag)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"raag": created})
}
