package market

import (
	"fmt"
	"math"
	"sort"
)

const (
	// DefaultTolerancePct bounds the similar-price search to ±15%.
	DefaultTolerancePct = 15.0
	maxSimilarResults   = 6
)

// ErrUnknownDistrict is returned when the target district has no ranking row.
type ErrUnknownDistrict struct{ Gugun string }

func (e ErrUnknownDistrict) Error() string {
	return fmt.Sprintf("no price data for district %s", e.Gugun)
}

// SimilarPriceDistricts finds districts whose average price falls within
// tolerancePct of the target's, scored by closeness, capped at six matches.
func SimilarPriceDistricts(target string, ranking []RankedDistrict, sales []Sale, tolerancePct float64) (SimilarResult, error) {
	targetRow, ok := FindRanked(ranking, target)
	if !ok {
		return SimilarResult{}, ErrUnknownDistrict{Gugun: target}
	}

	result := SimilarResult{
		TargetDistrict: target,
		TargetPrice:    targetRow.Price84,
		TargetRank:     targetRow.Rank,
		PriceMin:       targetRow.Price84 * (1 - tolerancePct/100),
		PriceMax:       targetRow.Price84 * (1 + tolerancePct/100),
		TolerancePct:   tolerancePct,
	}

	for _, r := range ranking {
		if r.Gugun == target || r.Price84 < result.PriceMin || r.Price84 > result.PriceMax {
			continue
		}
		diffPct := (r.Price84 - targetRow.Price84) / targetRow.Price84 * 100
		result.Similar = append(result.Similar, SimilarDistrict{
			Gugun:      r.Gugun,
			Rank:       r.Rank,
			Price84:    r.Price84,
			DiffPct:    diffPct,
			Similarity: 100 - math.Abs(diffPct),
		})
	}

	sort.Slice(result.Similar, func(i, j int) bool {
		if result.Similar[i].Similarity != result.Similar[j].Similarity {
			return result.Similar[i].Similarity > result.Similar[j].Similarity
		}
		return result.Similar[i].Gugun < result.Similar[j].Gugun
	})
	if len(result.Similar) > maxSimilarResults {
		result.Similar = result.Similar[:maxSimilarResults]
	}

	var simSum float64
	for _, s := range result.Similar {
		simSum += s.Similarity
	}
	if len(result.Similar) > 0 {
		result.AvgSimilarity = simSum / float64(len(result.Similar))
	}

	// Comparison table: target first, then matches by similarity.
	targetYear, targetHouseholds := districtExtras(sales, target)
	result.Rows = append(result.Rows, ComparisonRow{
		Gugun:           target,
		Rank:            targetRow.Rank,
		Price84:         targetRow.Price84,
		DiffPct:         0,
		Similarity:      100,
		AvgBuildYear:    targetYear,
		TotalHouseholds: targetHouseholds,
		IsTarget:        true,
	})
	for _, s := range result.Similar {
		year, households := districtExtras(sales, s.Gugun)
		result.Rows = append(result.Rows, ComparisonRow{
			Gugun:           s.Gugun,
			Rank:            s.Rank,
			Price84:         s.Price84,
			DiffPct:         s.DiffPct,
			Similarity:      s.Similarity,
			AvgBuildYear:    year,
			TotalHouseholds: households,
		})
	}

	return result, nil
}

// AdjacentComparison builds the side-by-side table for a district and its
// neighbors: the target first, then neighbors by price descending. Neighbors
// without ranking data are skipped.
func AdjacentComparison(target string, neighbors []string, ranking []RankedDistrict, sales []Sale) ([]ComparisonRow, error) {
	targetRow, ok := FindRanked(ranking, target)
	if !ok {
		return nil, ErrUnknownDistrict{Gugun: target}
	}

	row := func(r RankedDistrict, isTarget bool) ComparisonRow {
		year, households := districtExtras(sales, r.Gugun)
		return ComparisonRow{
			Gugun:           r.Gugun,
			Rank:            r.Rank,
			Price84:         r.Price84,
			DiffPct:         (r.Price84 - targetRow.Price84) / targetRow.Price84 * 100,
			Similarity:      100 - math.Abs((r.Price84-targetRow.Price84)/targetRow.Price84*100),
			AvgBuildYear:    year,
			TotalHouseholds: households,
			IsTarget:        isTarget,
		}
	}

	rows := []ComparisonRow{row(targetRow, true)}
	var neighborRows []ComparisonRow
	for _, name := range neighbors {
		if r, ok := FindRanked(ranking, name); ok {
			neighborRows = append(neighborRows, row(r, false))
		}
	}
	sort.Slice(neighborRows, func(i, j int) bool {
		if neighborRows[i].Price84 != neighborRows[j].Price84 {
			return neighborRows[i].Price84 > neighborRows[j].Price84
		}
		return neighborRows[i].Gugun < neighborRows[j].Gugun
	})
	return append(rows, neighborRows...), nil
}

// SimilarDistrictNames extracts just the matched district names.
func (r SimilarResult) SimilarDistrictNames() []string {
	names := make([]string, len(r.Similar))
	for i, s := range r.Similar {
		names[i] = s.Gugun
	}
	return names
}
