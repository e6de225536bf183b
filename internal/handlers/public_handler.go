package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/middleware"
	"github.com/BruksfildServices01/mechapp/internal/usecase/workshop"
)

// PublicHandler serves the marketplace listings: mechanics, workshops and reviews.
type PublicHandler struct {
	workshops *workshop.Service
	log       *zap.Logger
}

func NewPublicHandler(workshops *workshop.Service, log *zap.Logger) *PublicHandler {
	return &PublicHandler{workshops: workshops, log: log}
}

// ======================================================
// MECHANICS
// ======================================================

type mechanicResponse struct {
	ID       uint              `json:"id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Workshop *workshopResponse `json:"workshop"`
}

// ListMechanics answers a bare JSON array.
func (h *PublicHandler) ListMechanics(c *gin.Context) {
	users, err := h.workshops.Mechanics(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out := make([]mechanicResponse, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, mechanicResponse{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Workshop: toWorkshopResponse(u.Workshop),
		})
	}
	c.JSON(http.StatusOK, out)
}

// ======================================================
// WORKSHOPS
// ======================================================

func (h *PublicHandler) ListWorkshops(c *gin.Context) {
	shops, err := h.workshops.Workshops(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out := make([]*workshopResponse, 0, len(shops))
	for i := range shops {
		out = append(out, toWorkshopResponse(&shops[i]))
	}
	c.JSON(http.StatusOK, out)
}

type reviewResponse struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type workshopDetailResponse struct {
	workshopResponse
	Phone         string           `json:"phone"`
	Description   string           `json:"description"`
	MechanicID    uint             `json:"mechanicId"`
	MechanicName  string           `json:"mechanicName"`
	AverageRating float64          `json:"averageRating"`
	Reviews       []reviewResponse `json:"reviews"`
}

func (h *PublicHandler) GetWorkshop(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	d, err := h.workshops.Detail(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	reviews := make([]reviewResponse, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		reviews = append(reviews, reviewResponse{
			ID:        r.ID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			Author:    r.Author,
			CreatedAt: r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, workshopDetailResponse{
		workshopResponse: *toWorkshopResponse(d.Workshop),
		Phone:            d.Workshop.Phone,
		Description:      d.Workshop.Description,
		MechanicID:       d.Workshop.MechanicID,
		MechanicName:     d.MechanicName,
		AverageRating:    d.AverageRating,
		Reviews:          reviews,
	})
}

// ======================================================
// REVIEWS
// ======================================================

type CreateReviewRequest struct {
	Rating  any    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *PublicHandler) CreateReview(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
		return
	}

	review, err := h.workshops.AddReview(c.Request.Context(), middleware.UserID(c), id, workshop.ReviewInput{
		Rating:  ratingText(req.Rating),
		Comment: req.Comment,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ratingText accepts the rating as a JSON number or string.
func ratingText(v any) string {
	switch r := v.(type) {
	case float64:
		if r != float64(int(r)) {
			return ""
		}
		return strconv.Itoa(int(r))
	case string:
		return r
	}
	return ""
}
