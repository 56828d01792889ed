package shipment

import "time"

// Classified pairs a record with its derived status and day delta.
type Classified struct {
	Record   Record
	Status   Status
	DayDelta int
}

// ClassifyAll derives status and day delta for every record, preserving
// input order.
func ClassifyAll(records []Record, today time.Time) []Classified {
	out := make([]Classified, len(records))
	for i, rec := range records {
		status := Classify(rec, today)
		out[i] = Classified{
			Record:   rec,
			Status:   status,
			DayDelta: DayDelta(rec, status, today),
		}
	}
	return out
}

// VolumeBucket groups statuses for the volume metrics: everything still
// moving, everything delivered without delay, and late deliveries.
type VolumeBucket int

const (
	BucketInTransit VolumeBucket = iota // InTransit + InTransitLate
	BucketDelivered                     // OnTime + Early
	BucketLate                          // Late
)

// AllBuckets lists the volume buckets in display order.
var AllBuckets = []VolumeBucket{BucketInTransit, BucketDelivered, BucketLate}

// Label returns the Portuguese UI label for the bucket.
func (b VolumeBucket) Label() string {
	switch b {
	case BucketInTransit:
		return "Volume Em Trânsito"
	case BucketDelivered:
		return "Volume Entregue"
	case BucketLate:
		return "Volume Em Atraso"
	}
	return "desconhecido"
}

// bucketOf maps each status to its volume bucket. Total over all statuses,
// so bucket volumes always partition the total volume.
func bucketOf(s Status) VolumeBucket {
	switch {
	case s == StatusLate:
		return BucketLate
	case s.Delivered():
		return BucketDelivered
	default:
		return BucketInTransit
	}
}

// Summary aggregates a classified record set into the dashboard metrics.
type Summary struct {
	TotalCount  int
	TotalVolume int

	Count      map[Status]int
	Percentage map[Status]float64

	BucketVolume     map[VolumeBucket]int
	BucketPercentage map[VolumeBucket]float64
}

// Summarize computes counts, percentages and volume buckets over an
// already classified record set. Empty input yields zero counts and zero
// percentages, never a division fault.
func Summarize(records []Classified) Summary {
	s := Summary{
		Count:            make(map[Status]int, len(AllStatuses)),
		Percentage:       make(map[Status]float64, len(AllStatuses)),
		BucketVolume:     make(map[VolumeBucket]int, len(AllBuckets)),
		BucketPercentage: make(map[VolumeBucket]float64, len(AllBuckets)),
	}
	for _, st := range AllStatuses {
		s.Count[st] = 0
		s.Percentage[st] = 0
	}
	for _, b := range AllBuckets {
		s.BucketVolume[b] = 0
		s.BucketPercentage[b] = 0
	}

	for _, c := range records {
		s.TotalCount++
		s.Count[c.Status]++
		s.TotalVolume += c.Record.VolumeCount
		s.BucketVolume[bucketOf(c.Status)] += c.Record.VolumeCount
	}

	if s.TotalCount > 0 {
		for _, st := range AllStatuses {
			s.Percentage[st] = 100 * float64(s.Count[st]) / float64(s.TotalCount)
		}
	}
	if s.TotalVolume > 0 {
		for _, b := range AllBuckets {
			s.BucketPercentage[b] = 100 * float64(s.BucketVolume[b]) / float64(s.TotalVolume)
		}
	}
	return s
}

// VolumeByUF sums volume counts per destination state code. Records without
// a state land under the empty key; callers decide whether to drop them.
func VolumeByUF(records []Record) map[string]int {
	out := make(map[string]int)
	for _, rec := range records {
		out[rec.DestinationUF] += rec.VolumeCount
	}
	return out
}
