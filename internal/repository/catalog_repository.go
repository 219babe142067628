package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stylehub/booking-api/internal/model"
)

// ReadPoolInterface defines the read-only database operations needed by
// catalog and slot repositories. This allows for easier testing with mocks.
type ReadPoolInterface interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CatalogRepository provides data access for stylists and services using pgx.
// The catalog is read-only from the booking engine's perspective.
type CatalogRepository struct {
	pool ReadPoolInterface
}

// NewCatalogRepository creates a new CatalogRepository with the given pool.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// NewCatalogRepositoryWithPool creates a CatalogRepository with a custom pool
// interface. This is primarily used for testing.
func NewCatalogRepositoryWithPool(pool ReadPoolInterface) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListStylists retrieves all stylists ordered by name.
func (r *CatalogRepository) ListStylists(ctx context.Context) ([]model.Stylist, error) {
	query := `SELECT id, name, followers, rating, review_count, avatar, specialties, location
		FROM stylists ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stylists: %w", err)
	}
	defer rows.Close()

	stylists := []model.Stylist{}
	for rows.Next() {
		var st model.Stylist
		if err := rows.Scan(&st.ID, &st.Name, &st.Followers, &st.Rating,
			&st.ReviewCount, &st.Avatar, &st.Specialties, &st.Location); err != nil {
			return nil, fmt.Errorf("scan stylist: %w", err)
		}
		stylists = append(stylists, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stylists rows: %w", err)
	}
	return stylists, nil
}

// GetStylist retrieves a stylist by ID.
// Returns nil, nil if the stylist is not found (service layer handles this).
func (r *CatalogRepository) GetStylist(ctx context.Context, id string) (*model.Stylist, error) {
	query := `SELECT id, name, followers, rating, review_count, avatar, specialties, location
		FROM stylists WHERE id = $1`

	var st model.Stylist
	err := r.pool.QueryRow(ctx, query, id).Scan(&st.ID, &st.Name, &st.Followers,
		&st.Rating, &st.ReviewCount, &st.Avatar, &st.Specialties, &st.Location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get stylist %s: %w", id, err)
	}
	return &st, nil
}

// GetService retrieves a single catalog service by ID.
// Returns nil, nil if the service is not found.
func (r *CatalogRepository) GetService(ctx context.Context, id string) (*model.Service, error) {
	query := `SELECT id, stylist_id, name, description, price, duration, category
		FROM services WHERE id = $1`

	var svc model.Service
	err := r.pool.QueryRow(ctx, query, id).Scan(&svc.ID, &svc.StylistID, &svc.Name,
		&svc.Description, &svc.Price, &svc.Duration, &svc.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service %s: %w", id, err)
	}
	return &svc, nil
}

// ListServicesByStylist retrieves a stylist's services ordered by name.
func (r *CatalogRepository) ListServicesByStylist(ctx context.Context, stylistID string) ([]model.Service, error) {
	query := `SELECT id, stylist_id, name, description, price, duration, category
		FROM services WHERE stylist_id = $1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, stylistID)
	if err != nil {
		return nil, fmt.Errorf("list services for stylist %s: %w", stylistID, err)
	}
	defer rows.Close()
	return scanServices(rows)
}

// GetServicesByIDs retrieves the catalog services with the given IDs.
// Missing IDs are simply absent from the result; the caller decides whether
// that is an error.
func (r *CatalogRepository) GetServicesByIDs(ctx context.Context, ids []string) ([]model.Service, error) {
	query := `SELECT id, stylist_id, name, description, price, duration, category
		FROM services WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get services by ids: %w", err)
	}
	defer rows.Close()
	return scanServices(rows)
}

func scanServices(rows pgx.Rows) ([]model.Service, error) {
	services := []model.Service{}
	for rows.Next() {
		var svc model.Service
		if err := rows.Scan(&svc.ID, &svc.StylistID, &svc.Name, &svc.Description,
			&svc.Price, &svc.Duration, &svc.Category); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services rows: %w", err)
	}
	return services, nil
}
