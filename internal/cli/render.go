package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cargarastreada/logistica/internal/shipment"
	"github.com/cargarastreada/logistica/internal/titan"
)

// RenderReport writes the text version of the status report: the metric
// header the dashboard shows as cards, then the shipment table.
func RenderReport(w io.Writer, records []shipment.Classified, summary shipment.Summary) {
	fmt.Fprintf(w, "Total de pedidos: %d\n", summary.TotalCount)
	for _, s := range shipment.AllStatuses {
		fmt.Fprintf(w, "  %-24s %5d  (%.2f%%)\n", s.Label(), summary.Count[s], summary.Percentage[s])
	}
	fmt.Fprintf(w, "Total de volumes: %d\n", summary.TotalVolume)
	for _, b := range shipment.AllBuckets {
		fmt.Fprintf(w, "  %-24s %5d  (%.2f%%)\n", b.Label(), summary.BucketVolume[b], summary.BucketPercentage[b])
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "\nNenhum registro encontrado.")
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CTE\tNF\tEMISSOR\tHUB\tTRANSPORTADORA\tPREV. ENTREGA\tDT. ENTREGA\tSTATUS\tDIAS")
	for _, c := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			c.Record.CTE,
			c.Record.NF,
			c.Record.IssuerOrDefault(),
			c.Record.HubOrDefault(),
			c.Record.Carrier,
			dateOrEmpty(c.Record.ExpectedDelivery),
			dateOrEmpty(c.Record.ActualDelivery),
			c.Status.Label(),
			c.DayDelta,
		)
	}
	tw.Flush()
}

// RenderVolumes writes a two-column place/volume table.
func RenderVolumes(w io.Writer, title string, rows [][2]string) {
	fmt.Fprintln(w, title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	tw.Flush()
}

// RenderInsights writes the narrative block under the supplier heat map.
func RenderInsights(w io.Writer, ins titan.Insights) {
	fmt.Fprintf(w, "Volume total transportado: %d volumes\n", ins.TotalVolume)
	fmt.Fprintf(w, "Média por estado: %.0f volumes\n", ins.MeanPerState)

	fmt.Fprintln(w, "Estados com maior volume:")
	for _, sv := range ins.TopStates {
		fmt.Fprintf(w, "  - %s: %d volumes\n", sv.Name, sv.Volume)
	}

	if len(ins.ZeroStates) > 0 {
		fmt.Fprintln(w, "Estados sem movimentação:")
		for _, name := range ins.ZeroStates {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	} else {
		fmt.Fprintln(w, "Todos os estados apresentaram algum volume movimentado.")
	}

	if ins.Concentrated {
		fmt.Fprintf(w, "Observação: %s apresentou volume muito acima da média.\n", ins.ConcentratedIn)
	}
}

// RenderComparison writes the supplier ranking block.
func RenderComparison(w io.Writer, cmp titan.Comparison) {
	if len(cmp.Ranking) == 0 {
		return
	}
	fmt.Fprintln(w, "Comparativo entre fornecedores:")
	for _, r := range cmp.Ranking {
		fmt.Fprintf(w, "  %-16s %d volumes\n", r.Name, r.Volume)
	}
	if len(cmp.Ranking) > 1 {
		fmt.Fprintf(w, "Diferença relativa entre o maior e o menor: %.1f%%\n", cmp.RelativeDiff)
	}
	for _, name := range cmp.LowVolumeNames {
		fmt.Fprintf(w, "Aviso: %s teve volume muito abaixo do esperado.\n", name)
	}
}
