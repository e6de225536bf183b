package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/middleware"
	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/usecase/workshop"
)

type ProfileHandler struct {
	workshops *workshop.Service
	log       *zap.Logger
}

func NewProfileHandler(workshops *workshop.Service, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{workshops: workshops, log: log}
}

type workshopResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Schedule string `json:"schedule"`
}

func toWorkshopResponse(w *models.Workshop) *workshopResponse {
	if w == nil {
		return nil
	}
	return &workshopResponse{
		ID:       w.ID,
		Name:     w.Name,
		Address:  w.Address,
		Schedule: w.Schedule,
	}
}

type profileResponse struct {
	userResponse
	Workshop *workshopResponse `json:"workshop,omitempty"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.workshops.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		userResponse: toUserResponse(user),
		Workshop:     toWorkshopResponse(user.Workshop),
	})
}

type UpdateWorkshopRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Schedule    string `json:"schedule"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

func (h *ProfileHandler) UpdateWorkshop(c *gin.Context) {
	var req UpdateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
		return
	}

	w, err := h.workshops.UpdateWorkshop(c.Request.Context(), middleware.UserID(c), workshop.WorkshopInput{
		Name:        req.Name,
		Address:     req.Address,
		Schedule:    req.Schedule,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, w)
}
