package chat

import (
	"fmt"
	"strings"

	"github.com/marbleseoul/server/format"
	"github.com/marbleseoul/server/market"
	"github.com/marbleseoul/server/session"
)

// seoulAverage is the mean district price of the current ranking.
func seoulAverage(ranking []market.RankedDistrict) float64 {
	if len(ranking) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ranking {
		sum += r.Price84
	}
	return sum / float64(len(ranking))
}

// ModeContext renders the reference data block handed to the model,
// specialized to the stage the user is looking at.
func ModeContext(state *session.State, snap *market.Snapshot) string {
	if snap == nil || len(snap.Ranking) == 0 {
		return "서울시 아파트 시세 데이터가 아직 준비되지 않았습니다."
	}

	switch state.ViewStage {
	case session.StageOverview:
		return overviewContext(snap)
	case session.StageRanking:
		return rankingContext(state, snap)
	case session.StageDistrict:
		return districtContext(state, snap)
	case session.StageComparison:
		return comparisonContext(state, snap)
	}

	return fmt.Sprintf("%d년 %d월 서울시 아파트 국평(84m²) 평균 매매가: %s",
		snap.Month/100, snap.Month%100, format.PriceEok(seoulAverage(snap.Ranking)))
}

func overviewContext(snap *market.Snapshot) string {
	ranking := snap.Ranking
	highest := ranking[0]
	lowest := ranking[len(ranking)-1]

	top5 := make([]string, 0, 5)
	for i := 0; i < 5 && i < len(ranking); i++ {
		top5 = append(top5, ranking[i].Gugun)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "현재 모드: 서울 전체 현황\n")
	fmt.Fprintf(&b, "기준월: %d\n", snap.Month)
	fmt.Fprintf(&b, "서울시 전체 평균 매매가: %s\n", format.PriceEok(seoulAverage(ranking)))
	fmt.Fprintf(&b, "총 자치구 수: %d개\n\n", len(ranking))
	fmt.Fprintf(&b, "🥇 최고가 자치구: %s (%s)\n", highest.Gugun, format.PriceEok(highest.Price84))
	fmt.Fprintf(&b, "🏷️ 최저가 자치구: %s (%s)\n", lowest.Gugun, format.PriceEok(lowest.Price84))
	fmt.Fprintf(&b, "📊 상위 5개 자치구: %s\n\n", strings.Join(top5, ", "))
	b.WriteString("사용자는 서울시 전체 현황을 보고 있으며, 전반적인 부동산 시장 동향에 대해 질문할 수 있습니다.")
	return b.String()
}

func rankingContext(state *session.State, snap *market.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "현재 모드: 가격 5분위 분석\n")
	fmt.Fprintf(&b, "기준월: %d\n", snap.Month)
	fmt.Fprintf(&b, "총 분위 수: %d개 구간\n\n", len(snap.Quintiles))
	b.WriteString("5분위별 정보:")
	for _, q := range snap.Quintiles {
		fmt.Fprintf(&b, "\n- %s: %s, %d개 자치구", q.Label, q.PriceRange, q.Count)
	}

	if state.SelectedQuintile > 0 {
		for _, q := range snap.Quintiles {
			if q.Index != state.SelectedQuintile {
				continue
			}
			fmt.Fprintf(&b, "\n\n현재 선택된 구간: %s (%s)", q.Label, q.Description)
			fmt.Fprintf(&b, "\n- 가격 범위: %s", q.PriceRange)
			fmt.Fprintf(&b, "\n- 포함 자치구: %s", strings.Join(q.Districts, ", "))
		}
	}

	b.WriteString("\n\n사용자는 가격 분위별 자치구 분석을 보고 있으며, 특정 구간이나 가격대별 비교에 대해 질문할 수 있습니다.")
	return b.String()
}

func districtContext(state *session.State, snap *market.Snapshot) string {
	if state.SelectedDistrict == "" {
		return "현재 모드: 자치구 선택\n아직 자치구가 선택되지 않았습니다. 사용자가 자치구를 선택하면 해당 자치구의 상세 분석을 제공할 수 있습니다."
	}

	row, ok := market.FindRanked(snap.Ranking, state.SelectedDistrict)
	if !ok {
		return fmt.Sprintf("현재 모드: 자치구 상세 분석\n%s의 가격 정보를 찾을 수 없습니다.", state.SelectedDistrict)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "현재 모드: 자치구 상세 분석\n")
	fmt.Fprintf(&b, "선택된 자치구: %s\n", row.Gugun)
	fmt.Fprintf(&b, "서울시 매매가 순위: %d위 (%d개 자치구 중)\n", row.Rank, len(snap.Ranking))
	fmt.Fprintf(&b, "국평(84m²) 평균 매매가: %s", format.PriceEok(row.Price84))

	if info, ok := market.DistrictDetail(snap.Sales, row.Gugun); ok {
		fmt.Fprintf(&b, "\n아파트 단지 수: %d개", info.ComplexCount)
		fmt.Fprintf(&b, "\n총 세대수: %s세대", format.GroupDigits(info.TotalHouseholds))
		if info.AvgBuildYear > 0 {
			fmt.Fprintf(&b, "\n평균 건축연도: %.0f년", info.AvgBuildYear)
		}
		fmt.Fprintf(&b, "\n가격 범위: %s ~ %s",
			format.PriceEok(info.MinPrice), format.PriceEok(info.MaxPrice))
	}

	fmt.Fprintf(&b, "\n\n사용자는 %s의 상세 정보를 보고 있으며, 해당 자치구의 특성, 투자 가치, 주변 인프라 등에 대해 질문할 수 있습니다.", row.Gugun)
	return b.String()
}

func comparisonContext(state *session.State, snap *market.Snapshot) string {
	if state.SelectedDistrict == "" {
		return "현재 모드: 자치구 비교\n기준 자치구가 선택되지 않았습니다. 자치구를 선택한 후 비교 분석을 진행할 수 있습니다."
	}

	row, _ := market.FindRanked(snap.Ranking, state.SelectedDistrict)

	var b strings.Builder
	fmt.Fprintf(&b, "현재 모드: 자치구 비교 분석\n")
	fmt.Fprintf(&b, "기준 자치구: %s\n", state.SelectedDistrict)
	fmt.Fprintf(&b, "기준 자치구 순위: %d위 (%d개 자치구 중)\n", row.Rank, len(snap.Ranking))
	fmt.Fprintf(&b, "기준 자치구 매매가: %s", format.PriceEok(row.Price84))

	if state.ComparisonMode != session.CompareNone && len(state.ComparisonDistricts) > 0 {
		label := "인접 자치구"
		if state.ComparisonMode == session.CompareSimilarPrice {
			label = "유사 가격대"
		}
		fmt.Fprintf(&b, "\n\n비교 방식: %s", label)
		fmt.Fprintf(&b, "\n비교 대상 수: %d개 자치구", len(state.ComparisonDistricts))
		fmt.Fprintf(&b, "\n비교 대상: %s", strings.Join(state.ComparisonDistricts, ", "))
	}

	fmt.Fprintf(&b, "\n\n사용자는 %s을 기준으로 다른 자치구들과의 비교 분석을 보고 있으며, 유사한 특성의 자치구나 투자 대안에 대해 질문할 수 있습니다.", state.SelectedDistrict)
	return b.String()
}
