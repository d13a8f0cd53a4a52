package fare

import (
	"sort"

	"github.com/whatsthemove/moveplan/internal/model"
)

// median returns the median of values. Values are copied, not reordered.
// Callers must not pass an empty slice.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// groupMultiplier groups records by key, takes the median yield of each
// group and normalizes it by the base CPM.
func groupMultiplier[K comparable](records []model.TicketRecord, base float64, key func(model.TicketRecord) K) map[K]float64 {
	grouped := make(map[K][]float64)
	for _, r := range records {
		k := key(r)
		grouped[k] = append(grouped[k], r.Yield)
	}

	mult := make(map[K]float64, len(grouped))
	for k, yields := range grouped {
		mult[k] = median(yields) / base
	}
	return mult
}
