package market

import (
	"fmt"
	"testing"

	"github.com/marbleseoul/server/geo"
)

// rankedFixture builds sales for all 25 districts in one month, priced so
// the alphabetical first district is the most expensive.
func rankedFixture(month int) []Sale {
	districts := geo.Districts()
	sales := make([]Sale, 0, len(districts))
	for i, gugun := range districts {
		sales = append(sales, Sale{
			AptCode:    fmt.Sprintf("A%03d", i),
			AptName:    gugun + " 1단지",
			Gugun:      gugun,
			DealYM:     month,
			Price84:    float64(250000 - i*8000),
			BuildYear:  2000 + i%20,
			Households: 500 + i*10,
		})
	}
	return sales
}

func TestLatestMonth(t *testing.T) {
	sales := []Sale{
		{Gugun: "강남구", DealYM: 202504, Price84: 1},
		{Gugun: "강남구", DealYM: 202506, Price84: 1},
		{Gugun: "강남구", DealYM: 202505, Price84: 1},
	}
	if got := LatestMonth(sales); got != 202506 {
		t.Errorf("LatestMonth = %d, want 202506", got)
	}
	if got := LatestMonth(nil); got != 0 {
		t.Errorf("LatestMonth(nil) = %d, want 0", got)
	}
}

func TestComputeRankingOrdersAndAverages(t *testing.T) {
	sales := []Sale{
		{AptName: "a", Gugun: "강남구", DealYM: 202506, Price84: 200000},
		{AptName: "b", Gugun: "강남구", DealYM: 202506, Price84: 100000},
		{AptName: "c", Gugun: "도봉구", DealYM: 202506, Price84: 60000},
		// Older month must not contribute.
		{AptName: "d", Gugun: "도봉구", DealYM: 202505, Price84: 999999},
	}

	ranking := ComputeRanking(sales, 202506, nil, nil)
	if len(ranking) != 2 {
		t.Fatalf("got %d ranking rows, want 2", len(ranking))
	}
	if ranking[0].Gugun != "강남구" || ranking[0].Rank != 1 {
		t.Errorf("top row = %+v", ranking[0])
	}
	if ranking[0].Price84 != 150000 {
		t.Errorf("강남구 average = %v, want 150000", ranking[0].Price84)
	}
	if ranking[1].Gugun != "도봉구" || ranking[1].Rank != 2 || ranking[1].Price84 != 60000 {
		t.Errorf("second row = %+v", ranking[1])
	}
	if ranking[0].NationalLabel != "N/A" || ranking[0].SeoulLabel != "N/A" {
		t.Errorf("labels without bands = %q / %q, want N/A", ranking[0].NationalLabel, ranking[0].SeoulLabel)
	}
}

func TestComputeRankingFullCity(t *testing.T) {
	sales := rankedFixture(202506)
	ranking := ComputeRanking(sales, 202506, nil, nil)
	if len(ranking) != 25 {
		t.Fatalf("got %d rows, want 25", len(ranking))
	}
	for i, r := range ranking {
		if r.Rank != i+1 {
			t.Errorf("row %d has rank %d", i, r.Rank)
		}
		if i > 0 && ranking[i-1].Price84 < r.Price84 {
			t.Errorf("ranking not descending at row %d", i)
		}
	}
}

func TestPercentileRank(t *testing.T) {
	bands := []PercentBand{
		{Percentile: 1, Threshold: 200000},
		{Percentile: 5, Threshold: 150000},
		{Percentile: 10, Threshold: 120000},
		{Percentile: 30, Threshold: 80000},
		{Percentile: 50, Threshold: 50000},
	}

	tests := []struct {
		price float64
		want  int
	}{
		{250000, 1},
		{200000, 1},
		{160000, 5},
		{120000, 10},
		{90000, 30},
		{50000, 50},
		{30000, 100}, // below every threshold
	}
	for _, tt := range tests {
		if got := PercentileRank(tt.price, bands); got != tt.want {
			t.Errorf("PercentileRank(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}

	if got := PercentileRank(100000, nil); got != 0 {
		t.Errorf("PercentileRank with no bands = %d, want 0", got)
	}
}

func TestRankingPercentLabels(t *testing.T) {
	sales := []Sale{{AptName: "a", Gugun: "서초구", DealYM: 202506, Price84: 170000}}
	national := []PercentBand{{Percentile: 3, Threshold: 160000}, {Percentile: 10, Threshold: 100000}}
	seoul := []PercentBand{{Percentile: 20, Threshold: 150000}}

	ranking := ComputeRanking(sales, 202506, national, seoul)
	if ranking[0].NationalPct != 3 || ranking[0].NationalLabel != "상위 3%" {
		t.Errorf("national = %d %q", ranking[0].NationalPct, ranking[0].NationalLabel)
	}
	if ranking[0].SeoulPct != 20 || ranking[0].SeoulLabel != "상위 20%" {
		t.Errorf("seoul = %d %q", ranking[0].SeoulPct, ranking[0].SeoulLabel)
	}
}

func TestFindRanked(t *testing.T) {
	ranking := ComputeRanking(rankedFixture(202506), 202506, nil, nil)
	row, ok := FindRanked(ranking, "강동구")
	if !ok || row.Gugun != "강동구" {
		t.Fatalf("FindRanked = %+v, %v", row, ok)
	}
	if _, ok := FindRanked(ranking, "부산구"); ok {
		t.Error("FindRanked matched an unknown district")
	}
}

func TestComputeQuintiles(t *testing.T) {
	ranking := ComputeRanking(rankedFixture(202506), 202506, nil, nil)
	quintiles := ComputeQuintiles(ranking)
	if len(quintiles) != 5 {
		t.Fatalf("got %d quintiles, want 5", len(quintiles))
	}

	seen := make(map[string]bool)
	for i, q := range quintiles {
		if q.Index != i+1 {
			t.Errorf("quintile %d has index %d", i, q.Index)
		}
		if q.Label != fmt.Sprintf("%d구간", i+1) {
			t.Errorf("quintile %d label = %q", i, q.Label)
		}
		if q.Description != fmt.Sprintf("상위 %d%%", 20*(i+1)) {
			t.Errorf("quintile %d description = %q", i, q.Description)
		}
		if q.Color != geo.QuintileColors[i] {
			t.Errorf("quintile %d color = %q, want %q", i, q.Color, geo.QuintileColors[i])
		}
		if q.Count != 5 || len(q.Districts) != 5 {
			t.Errorf("quintile %d has %d districts", i, len(q.Districts))
		}
		if q.PriceMin > q.PriceMax {
			t.Errorf("quintile %d price range inverted: %v > %v", i, q.PriceMin, q.PriceMax)
		}
		for _, d := range q.Districts {
			if seen[d] {
				t.Errorf("district %s appears in two quintiles", d)
			}
			seen[d] = true
		}
	}
	if len(seen) != 25 {
		t.Errorf("quintiles cover %d districts, want 25", len(seen))
	}

	// Bucket 1 holds the most expensive districts.
	if quintiles[0].PriceMin < quintiles[4].PriceMax {
		t.Errorf("bucket 1 min %v below bucket 5 max %v", quintiles[0].PriceMin, quintiles[4].PriceMax)
	}
}

func TestQuintileOf(t *testing.T) {
	ranking := ComputeRanking(rankedFixture(202506), 202506, nil, nil)
	quintiles := ComputeQuintiles(ranking)

	top := ranking[0].Gugun
	q, ok := QuintileOf(quintiles, top)
	if !ok || q.Index != 1 {
		t.Errorf("QuintileOf(%s) = %+v, %v", top, q, ok)
	}
	bottom := ranking[24].Gugun
	q, ok = QuintileOf(quintiles, bottom)
	if !ok || q.Index != 5 {
		t.Errorf("QuintileOf(%s) = %+v, %v", bottom, q, ok)
	}
	if _, ok := QuintileOf(quintiles, "부산구"); ok {
		t.Error("QuintileOf matched an unknown district")
	}
}
