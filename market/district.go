package market

import (
	"sort"

	"github.com/samber/lo"
)

const topComplexCount = 5

// DistrictDetail summarizes one district's apartment stock: summary
// statistics plus the five most expensive complexes. Household counts
// are taken once per complex, not once per monthly row.
func DistrictDetail(sales []Sale, gugun string) (DistrictInfo, bool) {
	rows := lo.Filter(sales, func(s Sale, _ int) bool { return s.Gugun == gugun })
	if len(rows) == 0 {
		return DistrictInfo{}, false
	}

	info := DistrictInfo{
		Gugun:    gugun,
		MinPrice: rows[0].Price84,
	}

	var priceSum, yearSum float64
	yearCount := 0
	for _, s := range rows {
		priceSum += s.Price84
		if s.Price84 > info.MaxPrice {
			info.MaxPrice = s.Price84
		}
		if s.Price84 < info.MinPrice {
			info.MinPrice = s.Price84
		}
		if s.BuildYear > 0 {
			yearSum += float64(s.BuildYear)
			yearCount++
		}
	}
	info.AvgPrice = priceSum / float64(len(rows))
	if yearCount > 0 {
		info.AvgBuildYear = yearSum / float64(yearCount)
	}

	byName := lo.GroupBy(rows, func(s Sale) string { return s.AptName })
	info.ComplexCount = len(byName)

	complexes := make([]ComplexInfo, 0, len(byName))
	for name, group := range byName {
		first := group[0]
		avg := lo.SumBy(group, func(s Sale) float64 { return s.Price84 }) / float64(len(group))
		complexes = append(complexes, ComplexInfo{
			AptName:    name,
			AvgPrice:   avg,
			BuildYear:  first.BuildYear,
			Households: first.Households,
		})
		info.TotalHouseholds += first.Households
	}

	sort.Slice(complexes, func(i, j int) bool {
		if complexes[i].AvgPrice != complexes[j].AvgPrice {
			return complexes[i].AvgPrice > complexes[j].AvgPrice
		}
		return complexes[i].AptName < complexes[j].AptName
	})
	if len(complexes) > topComplexCount {
		complexes = complexes[:topComplexCount]
	}
	info.TopComplexes = complexes

	return info, true
}

// districtExtras computes the build-year and household figures used by
// the comparison table, with the same per-complex dedup as DistrictDetail.
func districtExtras(sales []Sale, gugun string) (avgBuildYear float64, totalHouseholds int) {
	rows := lo.Filter(sales, func(s Sale, _ int) bool { return s.Gugun == gugun })
	if len(rows) == 0 {
		return 0, 0
	}

	var yearSum float64
	yearCount := 0
	for _, s := range rows {
		if s.BuildYear > 0 {
			yearSum += float64(s.BuildYear)
			yearCount++
		}
	}
	if yearCount > 0 {
		avgBuildYear = yearSum / float64(yearCount)
	}

	seen := make(map[string]bool)
	for _, s := range rows {
		if seen[s.AptName] {
			continue
		}
		seen[s.AptName] = true
		totalHouseholds += s.Households
	}
	return avgBuildYear, totalHouseholds
}
