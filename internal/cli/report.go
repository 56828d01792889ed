package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cargarastreada/logistica/internal/shipment"
	"github.com/cargarastreada/logistica/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	From     string
	To       string
	CTE      string
	NF       string
	Issuers  []string
	Hubs     []string
	Statuses []string
	Today    string
}

// NewReportCommand creates the report command: the after-sales status
// table with its metric header.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Shipment status report",
		Long: `Query shipment rows, derive the delivery status of each (CTE, NF)
pair and print the filtered table with per-status counts and volumes.

Example:
  logistica report --from 2024-05-01 --to 2024-05-31 --status atrasado`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "emission date range start (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "", "emission date range end (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&opts.CTE, "cte", "", "CTE number substring filter")
	cmd.Flags().StringVar(&opts.NF, "nf", "", "NF number substring filter")
	cmd.Flags().StringSliceVar(&opts.Issuers, "issuer", nil, "issuer filter (repeatable; use 'unknown' for rows without one)")
	cmd.Flags().StringSliceVar(&opts.Hubs, "hub", nil, "hub filter (repeatable; use 'Não informado' for unmatched)")
	cmd.Flags().StringSliceVar(&opts.Statuses, "status", nil,
		"status filter: em_transito, em_transito_atrasado, no_prazo, antecipado, atrasado")
	cmd.Flags().StringVar(&opts.Today, "today", "", "reference date for status derivation (defaults to today)")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	cfg, err := opts.Config()
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}

	today := shipment.DateOnly(time.Now())
	if opts.Today != "" {
		today = shipment.ParseDate(opts.Today)
		if today.IsZero() {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --today %q", opts.Today), nil)
		}
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer db.Close()

	records, err := db.QueryShipments(cmd.Context(), store.ShipmentQuery{
		EmissionFrom: shipment.ParseDate(opts.From),
		EmissionTo:   shipment.ParseDate(opts.To),
		CTEContains:  opts.CTE,
		NFContains:   opts.NF,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "query shipments", err)
	}

	classified := shipment.ClassifyAll(shipment.Collapse(records), today)
	classified = shipment.Filter(classified, shipment.Criteria{
		Issuers:  shipment.NewSet(opts.Issuers),
		Hubs:     shipment.NewSet(opts.Hubs),
		Statuses: shipment.NewStatusSet(opts.Statuses),
	})
	summary := shipment.Summarize(classified)

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}
	out.VerboseLog("classified %d records (reference date %s)", len(classified), today.Format("2006-01-02"))

	if opts.Format == "json" {
		return out.SuccessJSON(reportPayload(classified, summary))
	}
	RenderReport(cmd.OutOrStdout(), classified, summary)
	return nil
}

// reportRow is the JSON shape of one classified shipment.
type reportRow struct {
	CTE      string `json:"cte"`
	NF       string `json:"nf"`
	Issuer   string `json:"emissor"`
	Hub      string `json:"hub"`
	Carrier  string `json:"transportadora,omitempty"`
	Expected string `json:"prev_entrega,omitempty"`
	Actual   string `json:"dt_entrega,omitempty"`
	Status   string `json:"status"`
	DayDelta int    `json:"diferenca_dias"`
}

func reportPayload(records []shipment.Classified, summary shipment.Summary) map[string]any {
	rows := make([]reportRow, len(records))
	for i, c := range records {
		rows[i] = reportRow{
			CTE:      c.Record.CTE,
			NF:       c.Record.NF,
			Issuer:   c.Record.IssuerOrDefault(),
			Hub:      c.Record.HubOrDefault(),
			Carrier:  c.Record.Carrier,
			Expected: dateOrEmpty(c.Record.ExpectedDelivery),
			Actual:   dateOrEmpty(c.Record.ActualDelivery),
			Status:   c.Status.String(),
			DayDelta: c.DayDelta,
		}
	}

	counts := make(map[string]int, len(shipment.AllStatuses))
	percentages := make(map[string]float64, len(shipment.AllStatuses))
	for _, s := range shipment.AllStatuses {
		counts[s.String()] = summary.Count[s]
		percentages[s.String()] = summary.Percentage[s]
	}
	return map[string]any{
		"rows":         rows,
		"total":        summary.TotalCount,
		"counts":       counts,
		"percentages":  percentages,
		"total_volume": summary.TotalVolume,
		"volumes": map[string]any{
			"em_transito": summary.BucketVolume[shipment.BucketInTransit],
			"entregue":    summary.BucketVolume[shipment.BucketDelivered],
			"em_atraso":   summary.BucketVolume[shipment.BucketLate],
		},
	}
}

func dateOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
