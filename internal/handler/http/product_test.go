package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/acme/review-platform/internal/domain"
	"github.com/acme/review-platform/internal/service"
)

func setupProductRouter(handler *ProductHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/v1/products", handler.List)
	r.Post("/api/v1/products", handler.Create)
	return r
}

func newProductHandler(productRepo *mockProductRepo) *ProductHandler {
	svc := service.NewProductService(productRepo, handlerTestLogger())
	return NewProductHandler(svc, handlerTestLogger())
}

func TestProductCreate_Success(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := setupProductRouter(newProductHandler(productRepo))

	productRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	b, _ := json.Marshal(CreateProductRequest{Name: "Mechanical Keyboard", Details: "tenkeyless"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(b))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	productRepo.AssertExpectations(t)
}

func TestProductCreate_MissingName(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := setupProductRouter(newProductHandler(productRepo))

	b, _ := json.Marshal(CreateProductRequest{Details: "no name"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(b))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	productRepo.AssertNotCalled(t, "Create")
}

func TestProductCreate_NameTooLong(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := setupProductRouter(newProductHandler(productRepo))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}
	b, _ := json.Marshal(CreateProductRequest{Name: string(long)})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(b))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	productRepo.AssertNotCalled(t, "Create")
}

func TestProductList_Success(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := setupProductRouter(newProductHandler(productRepo))

	productRepo.On("List", mock.Anything).Return([]domain.Product{
		{ID: testProductID, Name: "Mechanical Keyboard"},
		{ID: testOtherID, Name: "Desk Lamp"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.([]any)
	assert.True(t, ok)
	assert.Len(t, data, 2)
	productRepo.AssertExpectations(t)
}

func TestProductList_Empty(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := setupProductRouter(newProductHandler(productRepo))

	productRepo.On("List", mock.Anything).Return([]domain.Product{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.([]any)
	assert.True(t, ok)
	assert.Empty(t, data)
}
