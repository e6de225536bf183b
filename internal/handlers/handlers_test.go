package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/usecase/account"
	"github.com/BruksfildServices01/mechapp/internal/usecase/workshop"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httperr.HTTPError {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ======================================================
// writeError
// ======================================================

func runWriteError(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	writeError(c, zap.NewNop(), err)
	return w
}

func TestWriteError_KnownBusinessCode(t *testing.T) {
	w := runWriteError(fmt.Errorf("create: %w", httperr.ErrBusiness("time_conflict")))

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "time_conflict", body.Code)
	assert.Equal(t, "Ese horario acaba de ser reservado.", body.Message)
}

func TestWriteError_UnknownBusinessCodeIsBadRequest(t *testing.T) {
	w := runWriteError(httperr.ErrBusiness("something_new"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "something_new", decodeError(t, w).Code)
}

func TestWriteError_ValidationFields(t *testing.T) {
	w := runWriteError(&account.ValidationError{Fields: fv.FieldErrors{
		fv.FieldEmail: {fv.MsgInvalidEmail},
	}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, httperr.CodeValidationFailed, body.Code)
	assert.Equal(t, []string{fv.MsgInvalidEmail}, body.Fields[fv.FieldEmail])
}

func TestWriteError_UnexpectedIsInternal(t *testing.T) {
	w := runWriteError(errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "internal_error", body.Code)
	assert.NotContains(t, body.Message, "connection reset")
}

// ======================================================
// helpers
// ======================================================

func TestRatingText(t *testing.T) {
	assert.Equal(t, "4", ratingText(float64(4)))
	assert.Equal(t, "", ratingText(4.5))
	assert.Equal(t, "5", ratingText("5"))
	assert.Equal(t, "", ratingText(nil))
	assert.Equal(t, "", ratingText(true))
}

func TestUintParam(t *testing.T) {
	r := gin.New()
	r.GET("/x/:id", func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, status := range map[string]int{
		"/x/12":  http.StatusOK,
		"/x/0":   http.StatusBadRequest,
		"/x/abc": http.StatusBadRequest,
		"/x/-3":  http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, status, w.Code, path)
	}
}

// ======================================================
// PublicHandler
// ======================================================

type memoryWorkshops struct {
	mechanics []models.User
	workshops map[uint]*models.Workshop
	reviews   map[uint][]workshop.ReviewRow
}

func (m *memoryWorkshops) GetUser(_ context.Context, id uint) (*models.User, error) {
	for i := range m.mechanics {
		if m.mechanics[i].ID == id {
			return &m.mechanics[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryWorkshops) SaveWorkshop(context.Context, *models.Workshop) error { return nil }

func (m *memoryWorkshops) ListBookableMechanics(context.Context) ([]models.User, error) {
	return m.mechanics, nil
}

func (m *memoryWorkshops) ListWorkshops(context.Context) ([]models.Workshop, error) {
	out := make([]models.Workshop, 0, len(m.workshops))
	for _, w := range m.workshops {
		out = append(out, *w)
	}
	return out, nil
}

func (m *memoryWorkshops) GetWorkshop(_ context.Context, id uint) (*models.Workshop, error) {
	w, ok := m.workshops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return w, nil
}

func (m *memoryWorkshops) ListReviews(_ context.Context, id uint) ([]workshop.ReviewRow, error) {
	return m.reviews[id], nil
}

func (m *memoryWorkshops) CreateReview(context.Context, *models.Review) error { return nil }

func newPublicRouter() *gin.Engine {
	shop := &models.Workshop{ID: 7, MechanicID: 2, Name: "Taller Luis", Schedule: "9:00 - 18:00"}
	repo := &memoryWorkshops{
		mechanics: []models.User{{ID: 2, Name: "Luis", Email: "luis@example.com", Role: models.RoleMechanic, Workshop: shop}},
		workshops: map[uint]*models.Workshop{7: shop},
		reviews: map[uint][]workshop.ReviewRow{
			7: {
				{Review: models.Review{ID: 1, Rating: 5}, Author: "Ana"},
				{Review: models.Review{ID: 2, Rating: 4}, Author: "Eva"},
			},
		},
	}

	h := NewPublicHandler(workshop.NewService(repo, nil), zap.NewNop())
	r := gin.New()
	r.GET("/api/mechanics", h.ListMechanics)
	r.GET("/api/workshops/:id", h.GetWorkshop)
	return r
}

func TestPublicHandler_ListMechanicsIsBareArray(t *testing.T) {
	w := httptest.NewRecorder()
	newPublicRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/mechanics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body []mechanicResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Luis", body[0].Name)
	require.NotNil(t, body[0].Workshop)
	assert.Equal(t, "9:00 - 18:00", body[0].Workshop.Schedule)
}

func TestPublicHandler_GetWorkshop(t *testing.T) {
	w := httptest.NewRecorder()
	newPublicRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/workshops/7", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body workshopDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Taller Luis", body.Name)
	assert.Equal(t, "Luis", body.MechanicName)
	assert.Equal(t, 4.5, body.AverageRating)
	assert.Len(t, body.Reviews, 2)
}

func TestPublicHandler_GetWorkshopNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	newPublicRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/workshops/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "workshop_not_found", decodeError(t, w).Code)
}
