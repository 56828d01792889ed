package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cargarastreada/logistica/internal/geo"
	"github.com/cargarastreada/logistica/internal/shipment"
	"github.com/cargarastreada/logistica/internal/titan"
)

// TitanOptions holds flags for the titan command.
type TitanOptions struct {
	*RootOptions
	Supplier string
	From     string
	To       string
}

// NewTitanCommand creates the titan command: the supplier dashboard fed
// by the carga-rastreada API.
func NewTitanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TitanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "titan",
		Short: "Supplier dashboard from the tracking API",
		Long: `Fetch order rows for one supplier (or all of them) over the API,
aggregate volume per state and print the insight report the dashboard
shows under the heat map.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTitan(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Supplier, "fornecedor", "Todos", "supplier name, or Todos for every supplier")
	cmd.Flags().StringVar(&opts.From, "from", "", "emission date range start (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "", "emission date range end (YYYY-MM-DD, inclusive)")

	return cmd
}

func runTitan(opts *TitanOptions, cmd *cobra.Command) error {
	cfg, err := opts.Config()
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}

	from := shipment.ParseDate(opts.From)
	to := shipment.ParseDate(opts.To)
	if from.IsZero() || to.IsZero() {
		return WrapExitError(ExitCommandError, "--from and --to are required (YYYY-MM-DD)", nil)
	}

	client := titan.NewClient(cfg.Titan.BaseURL)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	suppliers := titan.DefaultSuppliers
	compare := opts.Supplier == "Todos"
	if !compare {
		sup, ok := titan.FindSupplier(titan.DefaultSuppliers, opts.Supplier)
		if !ok {
			return WrapExitError(ExitCommandError, fmt.Sprintf("unknown supplier %q", opts.Supplier), nil)
		}
		suppliers = []titan.Supplier{sup}
	}

	result := titan.FetchAll(cmd.Context(), client, suppliers, from, to)
	for _, warning := range result.Warnings {
		fmt.Fprintln(out.GetErrWriter(), warning)
	}
	if len(result.Orders) == 0 && len(result.Warnings) == len(suppliers) {
		return WrapExitError(ExitCommandError, "no supplier data available", nil)
	}

	stateNames := fetchStateNames(opts, cmd, cfg.GeoJSONURL)
	insights := titan.BuildInsights(result.Orders, stateNames)
	comparison := titan.CompareSuppliers(result.VolumeBySupplier)

	if opts.Format == "json" {
		payload := map[string]any{
			"insights": insights,
			"warnings": result.Warnings,
		}
		if compare {
			payload["comparativo"] = comparison
		}
		return out.SuccessJSON(payload)
	}

	RenderInsights(cmd.OutOrStdout(), insights)
	if compare {
		fmt.Fprintln(cmd.OutOrStdout())
		RenderComparison(cmd.OutOrStdout(), comparison)
	}
	return nil
}

// fetchStateNames pulls the boundary data for display names. When the
// fetch fails the report still runs, keyed by bare UF codes.
func fetchStateNames(opts *TitanOptions, cmd *cobra.Command, url string) map[string]string {
	ctx, cancel := contextWithTimeout(cmd, 30*time.Second)
	defer cancel()

	set, err := geo.NewBoundaryClient(url).FetchStates(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "erro ao carregar o GeoJSON: %v\n", err)
		names := make(map[string]string, len(geo.AllUFs()))
		for _, uf := range geo.AllUFs() {
			names[uf] = uf
		}
		return names
	}
	return set.Names()
}
