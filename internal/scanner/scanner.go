package scanner

import (
	"context"
	"sort"
	"time"

	"github.com/oshokin/proximity-lock/internal/domain/proximity"
)

// Scanner produces a snapshot of visible devices for a bounded window.
// A scan may legitimately return an empty slice; errors mark transient
// faults of the scanning transport, not an empty neighborhood.
type Scanner interface {
	Scan(ctx context.Context, window time.Duration) ([]proximity.Reading, error)
}

// snapshotToReadings flattens a per-address map into a slice sorted
// strongest signal first, for stable logs and listings.
func snapshotToReadings(seen map[string]proximity.Reading) []proximity.Reading {
	readings := make([]proximity.Reading, 0, len(seen))
	for _, r := range seen {
		readings = append(readings, r)
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].RSSI > readings[j].RSSI
	})

	return readings
}
