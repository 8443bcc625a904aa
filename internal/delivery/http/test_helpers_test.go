package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/usecase/marca"
	"github.com/icanh/registro-vehiculos/internal/usecase/persona"
	"github.com/icanh/registro-vehiculos/internal/usecase/vehiculo"
	"github.com/stretchr/testify/mock"
)

// withURLParam inyecta un parámetro de ruta de chi en la petición,
// para poder invocar los handlers sin montar el router completo
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// MockMarcaService - mock del servicio de marcas
type MockMarcaService struct {
	mock.Mock
}

func (m *MockMarcaService) CreateMarca(ctx context.Context, req *marca.CreateMarcaRequest) (*domain.Marca, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*domain.Marca), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMarcaService) ListMarcas(ctx context.Context, skip, limit int) ([]*domain.Marca, error) {
	args := m.Called(ctx, skip, limit)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Marca), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMarcaService) GetMarcaByID(ctx context.Context, id int64) (*domain.Marca, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Marca), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMarcaService) UpdateMarca(ctx context.Context, id int64, req *marca.UpdateMarcaRequest) (*domain.Marca, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*domain.Marca), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMarcaService) DeleteMarca(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPersonaService - mock del servicio de personas
type MockPersonaService struct {
	mock.Mock
}

func (m *MockPersonaService) CreatePersona(ctx context.Context, req *persona.CreatePersonaRequest) (*domain.Persona, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*domain.Persona), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPersonaService) ListPersonas(ctx context.Context, skip, limit int) ([]*domain.Persona, error) {
	args := m.Called(ctx, skip, limit)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Persona), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPersonaService) GetPersonaByID(ctx context.Context, id int64) (*domain.Persona, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Persona), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPersonaService) UpdatePersona(ctx context.Context, id int64, req *persona.UpdatePersonaRequest) (*domain.Persona, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*domain.Persona), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPersonaService) DeletePersona(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVehiculoService - mock del servicio de vehículos
type MockVehiculoService struct {
	mock.Mock
}

func (m *MockVehiculoService) CreateVehiculo(ctx context.Context, req *vehiculo.CreateVehiculoRequest) (*domain.Vehiculo, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*domain.Vehiculo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehiculoService) ListVehiculos(ctx context.Context, skip, limit int) ([]*domain.Vehiculo, error) {
	args := m.Called(ctx, skip, limit)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Vehiculo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehiculoService) GetVehiculoByID(ctx context.Context, id int64) (*domain.Vehiculo, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Vehiculo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehiculoService) GetVehiculosByPersona(ctx context.Context, personaID int64) ([]*domain.Vehiculo, error) {
	args := m.Called(ctx, personaID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Vehiculo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehiculoService) UpdateVehiculo(ctx context.Context, id int64, req *vehiculo.UpdateVehiculoRequest) (*domain.Vehiculo, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*domain.Vehiculo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehiculoService) DeleteVehiculo(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehiculoService) AddPropietario(ctx context.Context, vehiculoID, personaID int64) (*domain.Vehiculo, error) {
	args := m.Called(ctx, vehiculoID, personaID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Vehiculo), args.Error(1)
	}
	return nil, args.Error(1)
}
