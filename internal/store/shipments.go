package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cargarastreada/logistica/internal/shipment"
)

// ShipmentQuery narrows the shipment read. Zero values disable a clause;
// the emission range is inclusive on both ends.
type ShipmentQuery struct {
	EmissionFrom time.Time
	EmissionTo   time.Time
	CTEContains  string
	NFContains   string
}

// QueryShipments returns shipment rows joined against the hub lookup on
// destination city. The date range and the CTE/NF substring filters are
// pushed down to SQL; set filters (issuer, hub, status) stay in the
// engine because status is derived, not stored.
//
// Results come back in emission order, then insertion order, so repeated
// queries see a stable sequence.
func (s *Store) QueryShipments(ctx context.Context, q ShipmentQuery) ([]shipment.Record, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT s.cte, s.nf, s.emissor, s.emissao_cte, s.prev_entrega,
		       s.dt_entrega, s.cidade, s.uf, s.qtd_vols,
		       h.hub, h.transportadora
		FROM site_carga_rastreada s
		LEFT JOIN hubs h ON s.cidade = h.danfe_dest_cidade
		WHERE 1=1`)

	var args []any
	if !q.EmissionFrom.IsZero() {
		sb.WriteString(" AND s.emissao_cte >= ?")
		args = append(args, q.EmissionFrom.Format("2006-01-02"))
	}
	if !q.EmissionTo.IsZero() {
		sb.WriteString(" AND s.emissao_cte <= ?")
		args = append(args, q.EmissionTo.Format("2006-01-02"))
	}
	if q.CTEContains != "" {
		sb.WriteString(" AND s.cte LIKE ?")
		args = append(args, "%"+q.CTEContains+"%")
	}
	if q.NFContains != "" {
		sb.WriteString(" AND s.nf LIKE ?")
		args = append(args, "%"+q.NFContains+"%")
	}
	sb.WriteString(" ORDER BY s.emissao_cte ASC, s.id ASC")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query shipments: %w", err)
	}
	defer rows.Close()

	var records []shipment.Record
	for rows.Next() {
		rec, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipments: %w", err)
	}

	if records == nil {
		records = []shipment.Record{}
	}
	return records, nil
}

// scanShipment maps one joined row to a Record, cleaning as it goes:
// NULL text becomes empty, malformed dates become absent, volumes coerce
// to non-negative ints.
func scanShipment(rows *sql.Rows) (shipment.Record, error) {
	var (
		cte, nf                                      string
		issuer, emission, expected, actual, city, uf sql.NullString
		volume, hub, carrier                         sql.NullString
	)
	if err := rows.Scan(&cte, &nf, &issuer, &emission, &expected, &actual,
		&city, &uf, &volume, &hub, &carrier); err != nil {
		return shipment.Record{}, fmt.Errorf("scan shipment: %w", err)
	}

	return shipment.Record{
		CTE:              cte,
		NF:               nf,
		Issuer:           issuer.String,
		Hub:              hub.String,
		Carrier:          carrier.String,
		DestinationCity:  city.String,
		DestinationUF:    uf.String,
		EmissionDate:     shipment.ParseDate(emission.String),
		ExpectedDelivery: shipment.ParseDate(expected.String),
		ActualDelivery:   shipment.ParseDate(actual.String),
		VolumeCount:      shipment.ParseVolume(volume.String),
	}, nil
}

// SeedShipment inserts one shipment row. Duplicate (cte, nf) pairs are
// silently ignored; the first import wins, matching the engine's
// first-value collapse.
func (s *Store) SeedShipment(ctx context.Context, rec shipment.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO site_carga_rastreada
		(cte, nf, emissor, emissao_cte, prev_entrega, dt_entrega, cidade, uf, qtd_vols)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cte, nf) DO NOTHING
	`,
		rec.CTE,
		rec.NF,
		nullable(rec.Issuer),
		dateText(rec.EmissionDate),
		dateText(rec.ExpectedDelivery),
		dateText(rec.ActualDelivery),
		nullable(rec.DestinationCity),
		nullable(rec.DestinationUF),
		fmt.Sprintf("%d", rec.VolumeCount),
	)
	if err != nil {
		return fmt.Errorf("seed shipment: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func dateText(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format("2006-01-02")
}
