package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/samber/lo"

	"github.com/marbleseoul/server/format"
	"github.com/marbleseoul/server/geo"
	"github.com/marbleseoul/server/market"
)

func (s *Server) handleSeoulOverview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.market.Snapshot()
	if snap == nil || len(snap.Ranking) == 0 {
		return NoData(), nil
	}

	avg := lo.SumBy(snap.Ranking, func(r market.RankedDistrict) float64 { return r.Price84 }) /
		float64(len(snap.Ranking))
	top := snap.Ranking[0]
	bottom := snap.Ranking[len(snap.Ranking)-1]

	return jsonResult(map[string]any{
		"month":               snap.Month,
		"district_count":      len(snap.Ranking),
		"avg_price_manwon":    avg,
		"avg_price_formatted": format.PriceEok(avg),
		"highest":             top,
		"lowest":              bottom,
	})
}

func (s *Server) handleDistrictRanking(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.market.Snapshot()
	if snap == nil {
		return NoData(), nil
	}
	return jsonResult(snap.Ranking)
}

func (s *Server) handleDistrictInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	district, err := req.RequireString("district")
	if err != nil {
		return ValidationError("district is required"), nil
	}
	if !geo.IsDistrict(district) {
		return NotFound("district", district), nil
	}

	snap := s.market.Snapshot()
	if snap == nil {
		return NoData(), nil
	}

	info, ok := market.DistrictDetail(snap.Sales, district)
	if !ok {
		return NotFound("district", district), nil
	}
	rank, _ := market.FindRanked(snap.Ranking, district)

	return jsonResult(map[string]any{
		"info": info,
		"rank": rank,
	})
}

func (s *Server) handleQuintileInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.market.Snapshot()
	if snap == nil {
		return NoData(), nil
	}

	index := req.GetInt("quintile", 0)
	if index == 0 {
		return jsonResult(snap.Quintiles)
	}
	if index < 1 || index > 5 {
		return ValidationError("quintile must be between 1 and 5"), nil
	}
	for _, q := range snap.Quintiles {
		if q.Index == index {
			return jsonResult(q)
		}
	}
	return NoData(), nil
}

func (s *Server) handleSimilarDistricts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	district, err := req.RequireString("district")
	if err != nil {
		return ValidationError("district is required"), nil
	}
	tolerance := req.GetFloat("tolerance_pct", market.DefaultTolerancePct)
	if tolerance <= 0 || tolerance > 100 {
		return ValidationError("tolerance_pct must be in (0, 100]"), nil
	}

	snap := s.market.Snapshot()
	if snap == nil {
		return NoData(), nil
	}

	result, err := market.SimilarPriceDistricts(district, snap.Ranking, snap.Sales, tolerance)
	if err != nil {
		return NotFound("district", district), nil
	}
	return jsonResult(result)
}

func (s *Server) handleAdjacentDistricts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	district, err := req.RequireString("district")
	if err != nil {
		return ValidationError("district is required"), nil
	}
	if !geo.IsDistrict(district) {
		return NotFound("district", district), nil
	}

	snap := s.market.Snapshot()
	if snap == nil {
		return NoData(), nil
	}

	neighbors := geo.Adjacent(district)
	rows, err := market.AdjacentComparison(district, neighbors, snap.Ranking, snap.Sales)
	if err != nil {
		return NotFound("district", district), nil
	}
	return jsonResult(map[string]any{
		"district":  district,
		"neighbors": neighbors,
		"rows":      rows,
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}
