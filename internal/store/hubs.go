package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Hub is one row of the hub lookup table.
type Hub struct {
	DestinationCity string
	Name            string
	Carrier         string
}

// ListHubs returns every hub, ordered by name then city.
func (s *Store) ListHubs(ctx context.Context) ([]Hub, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT danfe_dest_cidade, hub, transportadora
		FROM hubs
		ORDER BY hub ASC, danfe_dest_cidade ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query hubs: %w", err)
	}
	defer rows.Close()

	var hubs []Hub
	for rows.Next() {
		var h Hub
		var carrier sql.NullString
		if err := rows.Scan(&h.DestinationCity, &h.Name, &carrier); err != nil {
			return nil, fmt.Errorf("scan hub: %w", err)
		}
		h.Carrier = carrier.String
		hubs = append(hubs, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hubs: %w", err)
	}

	if hubs == nil {
		hubs = []Hub{}
	}
	return hubs, nil
}

// CarrierByCity returns the destination-city to carrier mapping used to
// annotate shipment tables.
func (s *Store) CarrierByCity(ctx context.Context) (map[string]string, error) {
	hubs, err := s.ListHubs(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(hubs))
	for _, h := range hubs {
		out[h.DestinationCity] = h.Carrier
	}
	return out, nil
}

// SeedHub inserts or replaces one hub lookup row.
func (s *Store) SeedHub(ctx context.Context, h Hub) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hubs (danfe_dest_cidade, hub, transportadora)
		VALUES (?, ?, ?)
		ON CONFLICT(danfe_dest_cidade) DO UPDATE
		SET hub = excluded.hub, transportadora = excluded.transportadora
	`, h.DestinationCity, h.Name, nullable(h.Carrier))
	if err != nil {
		return fmt.Errorf("seed hub: %w", err)
	}
	return nil
}
