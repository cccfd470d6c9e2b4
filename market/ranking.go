package market

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// LatestMonth returns the most recent deal month (YYYYMM) in the data.
func LatestMonth(sales []Sale) int {
	if len(sales) == 0 {
		return 0
	}
	return lo.MaxBy(sales, func(a, b Sale) bool { return a.DealYM > b.DealYM }).DealYM
}

// districtAverages computes the mean 84m² price per district for one month.
func districtAverages(sales []Sale, month int) map[string]float64 {
	monthly := lo.Filter(sales, func(s Sale, _ int) bool { return s.DealYM == month })
	byGugun := lo.GroupBy(monthly, func(s Sale) string { return s.Gugun })

	averages := make(map[string]float64, len(byGugun))
	for gugun, rows := range byGugun {
		sum := lo.SumBy(rows, func(s Sale) float64 { return s.Price84 })
		averages[gugun] = sum / float64(len(rows))
	}
	return averages
}

// PercentileRank finds the percentile a price belongs to: the smallest
// percentile among bands whose threshold the price clears. A price below
// every threshold falls in the bottom band (100).
func PercentileRank(price float64, bands []PercentBand) int {
	if len(bands) == 0 {
		return 0
	}
	best := 0
	for _, b := range bands {
		if b.Threshold > price {
			continue
		}
		if best == 0 || b.Percentile < best {
			best = b.Percentile
		}
	}
	if best == 0 {
		return 100
	}
	return best
}

func percentLabel(pct int) string {
	if pct == 0 {
		return "N/A"
	}
	return fmt.Sprintf("상위 %d%%", pct)
}

// ComputeRanking builds the district price ranking for one month,
// most expensive first, annotated with national and Seoul percentiles.
func ComputeRanking(sales []Sale, month int, national, seoul []PercentBand) []RankedDistrict {
	averages := districtAverages(sales, month)

	ranking := make([]RankedDistrict, 0, len(averages))
	for gugun, price := range averages {
		ranking = append(ranking, RankedDistrict{Gugun: gugun, Price84: price})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Price84 != ranking[j].Price84 {
			return ranking[i].Price84 > ranking[j].Price84
		}
		return ranking[i].Gugun < ranking[j].Gugun
	})

	for i := range ranking {
		ranking[i].Rank = i + 1
		ranking[i].NationalPct = PercentileRank(ranking[i].Price84, national)
		ranking[i].SeoulPct = PercentileRank(ranking[i].Price84, seoul)
		ranking[i].NationalLabel = percentLabel(ranking[i].NationalPct)
		ranking[i].SeoulLabel = percentLabel(ranking[i].SeoulPct)
	}
	return ranking
}

// FindRanked returns the ranking row for a district.
func FindRanked(ranking []RankedDistrict, gugun string) (RankedDistrict, bool) {
	return lo.Find(ranking, func(r RankedDistrict) bool { return r.Gugun == gugun })
}
