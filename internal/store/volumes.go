package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cargarastreada/logistica/internal/shipment"
)

// CityVolume is one row of the grouped city/state volume query.
type CityVolume struct {
	City   string
	UF     string
	Volume int
}

// VolumeByUF sums report volumes per destination state. Rows whose volume
// text is non-numeric contribute zero, mirroring the engine's coercion.
func (s *Store) VolumeByUF(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uf_destinatario, quantidade_de_volumes
		FROM relatorios_ctes
	`)
	if err != nil {
		return nil, fmt.Errorf("query volume by uf: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var uf, volume sql.NullString
		if err := rows.Scan(&uf, &volume); err != nil {
			return nil, fmt.Errorf("scan volume by uf: %w", err)
		}
		out[uf.String] += shipment.ParseVolume(volume.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate volume by uf: %w", err)
	}
	return out, nil
}

// VolumeByCity sums report volumes per destination city, ordered by city
// then state so the map listing is stable.
func (s *Store) VolumeByCity(ctx context.Context) ([]CityVolume, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cidade_destinatario, uf_destinatario, quantidade_de_volumes
		FROM relatorios_ctes
		ORDER BY cidade_destinatario ASC, uf_destinatario ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query volume by city: %w", err)
	}
	defer rows.Close()

	byKey := make(map[string]int)
	var order []CityVolume
	for rows.Next() {
		var city, uf, volume sql.NullString
		if err := rows.Scan(&city, &uf, &volume); err != nil {
			return nil, fmt.Errorf("scan volume by city: %w", err)
		}
		key := city.String + "\x1f" + uf.String
		if _, seen := byKey[key]; !seen {
			order = append(order, CityVolume{City: city.String, UF: uf.String})
		}
		byKey[key] += shipment.ParseVolume(volume.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate volume by city: %w", err)
	}

	for i := range order {
		order[i].Volume = byKey[order[i].City+"\x1f"+order[i].UF]
	}
	if order == nil {
		order = []CityVolume{}
	}
	return order, nil
}

// SeedCityVolume inserts one report row.
func (s *Store) SeedCityVolume(ctx context.Context, v CityVolume) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO relatorios_ctes (cidade_destinatario, uf_destinatario, quantidade_de_volumes)
		VALUES (?, ?, ?)
	`, nullable(v.City), nullable(v.UF), fmt.Sprintf("%d", v.Volume))
	if err != nil {
		return fmt.Errorf("seed city volume: %w", err)
	}
	return nil
}
