package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cargarastreada/logistica/internal/geo"
	"github.com/cargarastreada/logistica/internal/store"
)

// VolumesOptions holds flags for the volumes command.
type VolumesOptions struct {
	*RootOptions
	By string
}

// volumeGroupings are the accepted --by values.
var volumeGroupings = []string{"uf", "cidade", "regiao"}

// NewVolumesCommand creates the volumes command: the aggregates behind
// the choropleth and scatter maps.
func NewVolumesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VolumesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "volumes",
		Short: "Volume aggregates by state, city or region",
		Long: `Sum transported volumes from the CTE report table, grouped the way
the maps consume them: per UF (choropleth), per city (scatter, with
plot coordinates where known) or per macro-region (bar chart).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVolumes(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.By, "by", "uf", "grouping: uf, cidade or regiao")

	return cmd
}

func runVolumes(opts *VolumesOptions, cmd *cobra.Command) error {
	valid := false
	for _, g := range volumeGroupings {
		if opts.By == g {
			valid = true
		}
	}
	if !valid {
		return WrapExitError(ExitCommandError,
			fmt.Sprintf("invalid --by %q: must be one of %v", opts.By, volumeGroupings), nil)
	}

	cfg, err := opts.Config()
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer db.Close()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	switch opts.By {
	case "cidade":
		cities, err := db.VolumeByCity(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "query volumes", err)
		}
		return renderCityVolumes(opts, out, cmd, cities)
	case "regiao":
		byUF, err := db.VolumeByUF(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "query volumes", err)
		}
		return renderRegionVolumes(opts, out, cmd, byUF)
	default:
		byUF, err := db.VolumeByUF(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "query volumes", err)
		}
		return renderUFVolumes(opts, out, cmd, byUF)
	}
}

func renderUFVolumes(opts *VolumesOptions, out *OutputFormatter, cmd *cobra.Command, byUF map[string]int) error {
	// The choropleth wants every state present, zero-filled.
	type entry struct {
		UF     string `json:"uf"`
		Volume int    `json:"volume"`
	}
	entries := make([]entry, 0, len(geo.AllUFs()))
	for _, uf := range geo.AllUFs() {
		entries = append(entries, entry{UF: uf, Volume: byUF[uf]})
	}

	if opts.Format == "json" {
		return out.SuccessJSON(entries)
	}
	rows := make([][2]string, len(entries))
	for i, e := range entries {
		rows[i] = [2]string{e.UF, strconv.Itoa(e.Volume)}
	}
	RenderVolumes(cmd.OutOrStdout(), "Volumes por estado:", rows)
	return nil
}

func renderRegionVolumes(opts *VolumesOptions, out *OutputFormatter, cmd *cobra.Command, byUF map[string]int) error {
	byRegion := geo.VolumeByRegion(byUF)

	type entry struct {
		Region string `json:"regiao"`
		Volume int    `json:"volume"`
	}
	entries := make([]entry, 0, len(geo.Regions))
	for _, region := range geo.Regions {
		entries = append(entries, entry{Region: region, Volume: byRegion[region]})
	}
	if v, ok := byRegion[geo.RegionUnknown]; ok && v > 0 {
		entries = append(entries, entry{Region: geo.RegionUnknown, Volume: v})
	}

	if opts.Format == "json" {
		return out.SuccessJSON(entries)
	}
	rows := make([][2]string, len(entries))
	for i, e := range entries {
		rows[i] = [2]string{e.Region, strconv.Itoa(e.Volume)}
	}
	RenderVolumes(cmd.OutOrStdout(), "Volumes por região:", rows)
	return nil
}

func renderCityVolumes(opts *VolumesOptions, out *OutputFormatter, cmd *cobra.Command, cities []store.CityVolume) error {
	type entry struct {
		City   string   `json:"cidade"`
		UF     string   `json:"uf"`
		Volume int      `json:"volume"`
		Lat    *float64 `json:"lat,omitempty"`
		Lon    *float64 `json:"lon,omitempty"`
	}
	entries := make([]entry, 0, len(cities))
	for _, cv := range cities {
		e := entry{City: cv.City, UF: cv.UF, Volume: cv.Volume}
		if coord, ok := geo.Lookup(cv.City); ok {
			plotted := coord.Offset()
			e.Lat, e.Lon = &plotted.Lat, &plotted.Lon
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Volume > entries[j].Volume })

	if opts.Format == "json" {
		return out.SuccessJSON(entries)
	}
	rows := make([][2]string, len(entries))
	for i, e := range entries {
		place := e.City
		if e.UF != "" {
			place += " - " + e.UF
		}
		if e.Lat == nil {
			place += " (sem coordenadas)"
		}
		rows[i] = [2]string{place, strconv.Itoa(e.Volume)}
	}
	RenderVolumes(cmd.OutOrStdout(), "Volumes por cidade:", rows)
	return nil
}
