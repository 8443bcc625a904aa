package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/pkg/logger"
	"github.com/icanh/registro-vehiculos/internal/usecase/marca"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMarcaHandler_CreateMarca(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockMarcaService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name:        "creación exitosa",
			requestBody: marca.CreateMarcaRequest{NombreMarca: "Toyota", Pais: "Japón"},
			mockSetup: func(m *MockMarcaService) {
				m.On("CreateMarca", mock.Anything, mock.AnythingOfType("*marca.CreateMarcaRequest")).
					Return(&domain.Marca{ID: 1, NombreMarca: "Toyota", Pais: "Japón"}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				data, ok := resp["data"].(map[string]interface{})
				assert.True(t, ok)
				assert.Equal(t, "Toyota", data["nombre_marca"])
				assert.Equal(t, "Japón", data["pais"])
			},
		},
		{
			name:        "nombre duplicado",
			requestBody: marca.CreateMarcaRequest{NombreMarca: "Toyota", Pais: "Japón"},
			mockSetup: func(m *MockMarcaService) {
				m.On("CreateMarca", mock.Anything, mock.AnythingOfType("*marca.CreateMarcaRequest")).
					Return(nil, domain.ErrMarcaYaExiste)
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, "Ya existe una marca con ese nombre.", resp["error"])
			},
		},
		{
			name:           "país ausente",
			requestBody:    map[string]string{"nombre_marca": "Toyota"},
			mockSetup:      func(m *MockMarcaService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				campos, ok := resp["campos"].(map[string]interface{})
				assert.True(t, ok)
				assert.Contains(t, campos, "pais")
			},
		},
		{
			name:           "JSON inválido",
			requestBody:    "no es json",
			mockSetup:      func(m *MockMarcaService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.NotEmpty(t, resp["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMarcaService)
			tt.mockSetup(mockService)

			handler := NewMarcaHandler(mockService, logger.NewNoop())

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, _ = json.Marshal(tt.requestBody)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/marcas", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.CreateMarca(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}

func TestMarcaHandler_GetMarcaByID(t *testing.T) {
	tests := []struct {
		name           string
		marcaID        string
		mockSetup      func(*MockMarcaService)
		expectedStatus int
	}{
		{
			name:    "marca encontrada",
			marcaID: "1",
			mockSetup: func(m *MockMarcaService) {
				m.On("GetMarcaByID", mock.Anything, int64(1)).
					Return(&domain.Marca{ID: 1, NombreMarca: "Toyota", Pais: "Japón"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "marca no encontrada",
			marcaID: "99",
			mockSetup: func(m *MockMarcaService) {
				m.On("GetMarcaByID", mock.Anything, int64(99)).
					Return(nil, domain.ErrMarcaNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "ID inválido",
			marcaID:        "abc",
			mockSetup:      func(m *MockMarcaService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMarcaService)
			tt.mockSetup(mockService)

			handler := NewMarcaHandler(mockService, logger.NewNoop())

			req := httptest.NewRequest(http.MethodGet, "/api/marcas/"+tt.marcaID, nil)
			req = withURLParam(req, "id", tt.marcaID)
			w := httptest.NewRecorder()

			handler.GetMarcaByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestMarcaHandler_UpdateMarca(t *testing.T) {
	t.Run("actualización parcial", func(t *testing.T) {
		mockService := new(MockMarcaService)
		mockService.On("UpdateMarca", mock.Anything, int64(1), mock.AnythingOfType("*marca.UpdateMarcaRequest")).
			Return(&domain.Marca{ID: 1, NombreMarca: "Toyota", Pais: "Corea"}, nil)

		handler := NewMarcaHandler(mockService, logger.NewNoop())

		body := []byte(`{"pais":"Corea"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/marcas/1", bytes.NewReader(body))
		req = withURLParam(req, "id", "1")
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.UpdateMarca(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "Corea", data["pais"])
		mockService.AssertExpectations(t)
	})

	t.Run("marca no encontrada", func(t *testing.T) {
		mockService := new(MockMarcaService)
		mockService.On("UpdateMarca", mock.Anything, int64(99), mock.AnythingOfType("*marca.UpdateMarcaRequest")).
			Return(nil, domain.ErrMarcaNotFound)

		handler := NewMarcaHandler(mockService, logger.NewNoop())

		body := []byte(`{"pais":"Corea"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/marcas/99", bytes.NewReader(body))
		req = withURLParam(req, "id", "99")
		w := httptest.NewRecorder()

		handler.UpdateMarca(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestMarcaHandler_DeleteMarca(t *testing.T) {
	tests := []struct {
		name           string
		marcaID        string
		mockSetup      func(*MockMarcaService)
		expectedStatus int
	}{
		{
			name:    "eliminación exitosa",
			marcaID: "1",
			mockSetup: func(m *MockMarcaService) {
				m.On("DeleteMarca", mock.Anything, int64(1)).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:    "marca con vehículos asociados",
			marcaID: "1",
			mockSetup: func(m *MockMarcaService) {
				m.On("DeleteMarca", mock.Anything, int64(1)).
					Return(domain.ErrMarcaEnUso)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:    "marca no encontrada",
			marcaID: "99",
			mockSetup: func(m *MockMarcaService) {
				m.On("DeleteMarca", mock.Anything, int64(99)).
					Return(domain.ErrMarcaNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMarcaService)
			tt.mockSetup(mockService)

			handler := NewMarcaHandler(mockService, logger.NewNoop())

			req := httptest.NewRequest(http.MethodDelete, "/api/marcas/"+tt.marcaID, nil)
			req = withURLParam(req, "id", tt.marcaID)
			w := httptest.NewRecorder()

			handler.DeleteMarca(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestMarcaHandler_ListMarcas(t *testing.T) {
	t.Run("lista con paginación", func(t *testing.T) {
		mockService := new(MockMarcaService)
		mockService.On("ListMarcas", mock.Anything, 10, 2).
			Return([]*domain.Marca{
				{ID: 1, NombreMarca: "Toyota", Pais: "Japón"},
				{ID: 2, NombreMarca: "Mazda", Pais: "Japón"},
			}, nil)

		handler := NewMarcaHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodGet, "/api/marcas?skip=10&limit=2", nil)
		w := httptest.NewRecorder()

		handler.ListMarcas(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		data, ok := response["data"].([]interface{})
		assert.True(t, ok)
		assert.Len(t, data, 2)
		mockService.AssertExpectations(t)
	})
}
