package market

import (
	"fmt"

	"github.com/marbleseoul/server/format"
	"github.com/marbleseoul/server/geo"
)

const quintileSize = 5

// ComputeQuintiles splits the ranked districts into five buckets of five,
// bucket 1 holding the most expensive districts.
func ComputeQuintiles(ranking []RankedDistrict) []Quintile {
	quintiles := make([]Quintile, 0, 5)
	for i := 0; i < 5; i++ {
		start := i * quintileSize
		if start >= len(ranking) {
			break
		}
		end := start + quintileSize
		if end > len(ranking) {
			end = len(ranking)
		}
		chunk := ranking[start:end]

		q := Quintile{
			Index:       i + 1,
			Label:       fmt.Sprintf("%d구간", i+1),
			Description: fmt.Sprintf("상위 %d%%", 20*(i+1)),
			Color:       geo.QuintileColors[i],
			Count:       len(chunk),
			PriceMin:    chunk[len(chunk)-1].Price84,
			PriceMax:    chunk[0].Price84,
		}
		for _, r := range chunk {
			q.Districts = append(q.Districts, r.Gugun)
		}
		q.PriceRange = fmt.Sprintf("%s ~ %s", format.PriceEok(q.PriceMin), format.PriceEok(q.PriceMax))
		quintiles = append(quintiles, q)
	}
	return quintiles
}

// QuintileOf returns the bucket containing a district.
func QuintileOf(quintiles []Quintile, gugun string) (Quintile, bool) {
	for _, q := range quintiles {
		for _, d := range q.Districts {
			if d == gugun {
				return q, true
			}
		}
	}
	return Quintile{}, false
}
