package service

import (
	"context"
	"fmt"

	"github.com/stylehub/booking-api/internal/model"
)

// CatalogRepositoryInterface defines the interface for stylist and service
// catalog data access.
type CatalogRepositoryInterface interface {
	ListStylists(ctx context.Context) ([]model.Stylist, error)
	GetStylist(ctx context.Context, id string) (*model.Stylist, error)
	GetService(ctx context.Context, id string) (*model.Service, error)
	ListServicesByStylist(ctx context.Context, stylistID string) ([]model.Service, error)
	GetServicesByIDs(ctx context.Context, ids []string) ([]model.Service, error)
}

// CatalogService provides read access to the stylist and service catalog.
// Catalog entries are created by stylist onboarding, which lives outside
// this service; the booking engine only reads them.
type CatalogService struct {
	repo CatalogRepositoryInterface
}

// NewCatalogService creates a new CatalogService with the given repository.
func NewCatalogService(repo CatalogRepositoryInterface) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListStylists returns all stylists in the catalog.
func (s *CatalogService) ListStylists(ctx context.Context) ([]model.Stylist, error) {
	return s.repo.ListStylists(ctx)
}

// GetStylist retrieves a stylist by ID.
// Returns ErrStylistNotFound if the stylist doesn't exist.
func (s *CatalogService) GetStylist(ctx context.Context, id string) (*model.Stylist, error) {
	stylist, err := s.repo.GetStylist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get stylist: %w", err)
	}
	if stylist == nil {
		return nil, ErrStylistNotFound
	}
	return stylist, nil
}

// GetService retrieves a single catalog service by ID.
// Returns ErrServiceNotFound if the service doesn't exist.
func (s *CatalogService) GetService(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// ListServicesByStylist returns the services a stylist offers.
func (s *CatalogService) ListServicesByStylist(ctx context.Context, stylistID string) ([]model.Service, error) {
	return s.repo.ListServicesByStylist(ctx, stylistID)
}
