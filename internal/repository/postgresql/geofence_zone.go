package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
)

type geofenceZoneRepository struct {
	db *database.DB
}

// ListZones implements checkclock.ZoneRepository.
func (r *geofenceZoneRepository) ListZones(ctx context.Context) ([]checkclock.GeofenceZone, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, zone_type, latitude, longitude, created_at
		FROM geofence_zones
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query geofence zones: %w", err)
	}
	defer rows.Close()

	var zones []checkclock.GeofenceZone
	for rows.Next() {
		var z checkclock.GeofenceZone
		if err := rows.Scan(&z.ID, &z.Name, &z.ZoneType, &z.Latitude, &z.Longitude, &z.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan geofence zone: %w", err)
		}
		zones = append(zones, z)
	}

	return zones, rows.Err()
}

func NewGeofenceZoneRepository(db *database.DB) checkclock.ZoneRepository {
	return &geofenceZoneRepository{db: db}
}
