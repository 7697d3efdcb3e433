package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/handler"
	"lekha/internal/port"
	"lekha/internal/recon"
	"lekha/internal/service"
	"lekha/internal/validator"
	"lekha/mocks"
)

func setupRouter(svc service.ReviewService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewReviewHandler(svc)

	review := r.Group("/api/v1/invoices/:id/review")
	{
		review.GET("", h.Open)
		review.PATCH("/header", h.EditHeader)
		review.POST("/rows", h.AddRow)
		review.PATCH("/rows/:rowID", h.EditRow)
		review.POST("/update", h.Update)
		review.POST("/submit", h.Submit)
		review.POST("/action", h.Action)
	}
	return r
}

func sampleView(id uuid.UUID) *service.ReviewView {
	return &service.ReviewView{
		InvoiceID: id,
		Status:    domain.InvoiceStatusDraft,
		Result:    &recon.Result{},
	}
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOpen_ReturnsView(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)
	id := uuid.New()

	svc.On("Open", mock.Anything, id).Return(sampleView(id), nil)

	w := doJSON(r, http.MethodGet, "/api/v1/invoices/"+id.String()+"/review", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
}

func TestOpen_InvalidID(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)

	w := doJSON(r, http.MethodGet, "/api/v1/invoices/not-a-uuid/review", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestOpen_NotFound(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)
	id := uuid.New()

	svc.On("Open", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := doJSON(r, http.MethodGet, "/api/v1/invoices/"+id.String()+"/review", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditHeader_RequiresField(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)
	id := uuid.New()

	w := doJSON(r, http.MethodPatch, "/api/v1/invoices/"+id.String()+"/review/header",
		gin.H{"value": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "EditHeaderField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEditRow_PassesFieldAndValue(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)
	id := uuid.New()
	rowID := uuid.New()

	svc.On("EditRowField", mock.Anything, id, rowID, "quantity", "5").Return(sampleView(id), nil)

	w := doJSON(r, http.MethodPatch,
		"/api/v1/invoices/"+id.String()+"/review/rows/"+rowID.String(),
		gin.H{"field": "quantity", "value": "5"})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestEditRow_SessionNotLoadedMapsToConflict(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)
	id := uuid.New()
	rowID := uuid.New()

	svc.On("EditRowField", mock.Anything, id, rowID, "quantity", "5").
		Return(nil, domain.ErrSessionNotLoaded)

	w := doJSON(r, http.MethodPatch,
		"/api/v1/invoices/"+id.String()+"/review/rows/"+rowID.String(),
		gin.H{"field": "quantity", "value": "5"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdate_ValidationFailureCarriesView(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)
	id := uuid.New()

	view := sampleView(id)
	view.Validation = &validator.Result{
		Header: map[string]string{"vendor_name": "vendor name is required"},
	}
	svc.On("Update", mock.Anything, id).Return(view, domain.ErrValidationFailed)

	w := doJSON(r, http.MethodPost, "/api/v1/invoices/"+id.String()+"/review/update", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	// The 422 body still surfaces the review state for inline markers.
	assert.NotNil(t, resp.Data)
}

func TestSubmit_Success(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)
	id := uuid.New()

	svc.On("Submit", mock.Anything, id).Return(sampleView(id), nil)

	w := doJSON(r, http.MethodPost, "/api/v1/invoices/"+id.String()+"/review/submit", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAction_RejectsUnknownAction(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)
	id := uuid.New()

	w := doJSON(r, http.MethodPost, "/api/v1/invoices/"+id.String()+"/review/action",
		gin.H{"action": "escalate"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Action", mock.Anything, mock.Anything, mock.Anything)
}

func TestAction_ApproveWithNotes(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)
	id := uuid.New()

	svc.On("Action", mock.Anything, id, port.ActionInput{
		Action: domain.ActionApprove, Notes: "verified against PO",
	}).Return(nil)

	w := doJSON(r, http.MethodPost, "/api/v1/invoices/"+id.String()+"/review/action",
		gin.H{"action": "approve", "notes": "verified against PO"})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAction_UpstreamFailureMapsToBadGateway(t *testing.T) {
	svc := new(mocks.MockReviewService)
	r := setupRouter(svc)
	id := uuid.New()

	svc.On("Action", mock.Anything, id, mock.Anything).Return(domain.ErrActionFailed)

	w := doJSON(r, http.MethodPost, "/api/v1/invoices/"+id.String()+"/review/action",
		gin.H{"action": "reject", "notes": "amounts do not reconcile"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
