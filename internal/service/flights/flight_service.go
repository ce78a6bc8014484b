package flights

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyfly/internal/domain"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	SearchByCity(ctx context.Context, city string) ([]domain.Flight, error)
}

type Catalog interface {
	All() []domain.Flight
	Lookup(number string) (domain.Flight, bool)
	SearchByCity(city string) []domain.Flight
}

type FlightService struct {
	catalog Catalog
}

func NewFlightService(catalog Catalog) *FlightService {
	return &FlightService{catalog: catalog}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	return s.catalog.All(), nil
}

func (s *FlightService) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	f, ok := s.catalog.Lookup(number)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrFlightNotFound, number)
	}
	return &f, nil
}

func (s *FlightService) SearchByCity(ctx context.Context, city string) ([]domain.Flight, error) {
	return s.catalog.SearchByCity(city), nil
}

var _ FlightUseCase = (*FlightService)(nil)
