package titan

import (
	"sort"
)

// StateVolume pairs a state code with its volume.
type StateVolume struct {
	UF     string
	Name   string
	Volume int
}

// Insights is the narrative report under the heat map.
type Insights struct {
	TotalVolume    int
	MeanPerState   float64
	TopStates      []StateVolume // up to five, descending volume
	ZeroStates     []string      // display names of states with no movement
	Concentrated   bool          // max state volume above twice the mean
	ConcentratedIn string
}

// lowVolumeThreshold flags suppliers whose period volume suggests a stale
// or broken feed rather than real operation.
const lowVolumeThreshold = 500

// BuildInsights aggregates orders per state over the full state list
// (stateNames maps UF code to display name). States absent from the
// orders count as zero so the report can call out dead regions.
func BuildInsights(orders []Order, stateNames map[string]string) Insights {
	byUF := make(map[string]int, len(stateNames))
	for uf := range stateNames {
		byUF[uf] = 0
	}
	for _, o := range orders {
		byUF[o.DestinationUF] += o.VolumeCount
	}

	states := make([]StateVolume, 0, len(byUF))
	total := 0
	for uf, volume := range byUF {
		name := stateNames[uf]
		if name == "" {
			name = uf
		}
		states = append(states, StateVolume{UF: uf, Name: name, Volume: volume})
		total += volume
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].Volume != states[j].Volume {
			return states[i].Volume > states[j].Volume
		}
		return states[i].UF < states[j].UF
	})

	ins := Insights{TotalVolume: total}
	if len(states) > 0 {
		ins.MeanPerState = float64(total) / float64(len(states))
	}

	top := len(states)
	if top > 5 {
		top = 5
	}
	ins.TopStates = states[:top]

	for _, sv := range states {
		if sv.Volume == 0 {
			ins.ZeroStates = append(ins.ZeroStates, sv.Name)
		}
	}
	sort.Strings(ins.ZeroStates)

	if len(states) > 0 && float64(states[0].Volume) > 2*ins.MeanPerState && states[0].Volume > 0 {
		ins.Concentrated = true
		ins.ConcentratedIn = states[0].Name
	}
	return ins
}

// SupplierRank is one entry of the supplier comparison.
type SupplierRank struct {
	Name   string
	Volume int
}

// Comparison ranks suppliers by period volume.
type Comparison struct {
	Ranking        []SupplierRank // descending volume
	RelativeDiff   float64        // (top - bottom) / top, in percent; 0 when top is 0
	LowVolumeNames []string       // suppliers below lowVolumeThreshold
}

// CompareSuppliers builds the ranking from the per-supplier volume map.
func CompareSuppliers(volumes map[string]int) Comparison {
	ranking := make([]SupplierRank, 0, len(volumes))
	for name, volume := range volumes {
		ranking = append(ranking, SupplierRank{Name: name, Volume: volume})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Volume != ranking[j].Volume {
			return ranking[i].Volume > ranking[j].Volume
		}
		return ranking[i].Name < ranking[j].Name
	})

	cmp := Comparison{Ranking: ranking}
	if len(ranking) > 1 {
		top := ranking[0].Volume
		bottom := ranking[len(ranking)-1].Volume
		if top > 0 {
			cmp.RelativeDiff = float64(top-bottom) / float64(top) * 100
		}
	}
	for _, r := range ranking {
		if r.Volume < lowVolumeThreshold {
			cmp.LowVolumeNames = append(cmp.LowVolumeNames, r.Name)
		}
	}
	return cmp
}
