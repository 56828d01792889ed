// Package geo carries the geographic lookups behind the volume maps: the
// UF-to-region table, the city coordinate table, and the state boundary
// (GeoJSON) client. Everything is keyed by the 2-letter UF code so the
// engine's aggregates line up with the boundary data.
package geo

import "sort"

// RegionUnknown is returned for codes outside the 27 Brazilian UFs.
const RegionUnknown = "Desconhecida"

// Regions lists the five macro-regions in display order.
var Regions = []string{"Norte", "Nordeste", "Centro-Oeste", "Sudeste", "Sul"}

var ufRegion = map[string]string{
	"AC": "Norte", "AP": "Norte", "AM": "Norte", "PA": "Norte",
	"RO": "Norte", "RR": "Norte", "TO": "Norte",
	"AL": "Nordeste", "BA": "Nordeste", "CE": "Nordeste", "MA": "Nordeste",
	"PB": "Nordeste", "PE": "Nordeste", "PI": "Nordeste", "RN": "Nordeste",
	"SE": "Nordeste",
	"DF": "Centro-Oeste", "GO": "Centro-Oeste", "MT": "Centro-Oeste",
	"MS": "Centro-Oeste",
	"ES": "Sudeste", "MG": "Sudeste", "RJ": "Sudeste", "SP": "Sudeste",
	"PR": "Sul", "RS": "Sul", "SC": "Sul",
}

// RegionOf maps a UF code to its macro-region. Unknown codes map to
// RegionUnknown instead of failing.
func RegionOf(uf string) string {
	if region, ok := ufRegion[uf]; ok {
		return region
	}
	return RegionUnknown
}

// AllUFs returns every known UF code, sorted.
func AllUFs() []string {
	out := make([]string, 0, len(ufRegion))
	for uf := range ufRegion {
		out = append(out, uf)
	}
	sort.Strings(out)
	return out
}

// VolumeByRegion rolls a per-UF volume map up into the five regions.
// Volumes under unknown codes land in RegionUnknown.
func VolumeByRegion(byUF map[string]int) map[string]int {
	out := make(map[string]int)
	for uf, volume := range byUF {
		out[RegionOf(uf)] += volume
	}
	return out
}
