// Package mcp implements a stdio MCP server exposing the Seoul apartment
// market data as tools, so AI agents can query rankings, district details,
// and price comparisons directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/marbleseoul/server/market"
)

type Server struct {
	market *market.Store
}

func NewServer(marketStore *market.Store) *Server {
	return &Server{market: marketStore}
}

// MCPServer builds the tool registry.
func (s *Server) MCPServer(version string) *server.MCPServer {
	srv := server.NewMCPServer("marbleseoul", version,
		server.WithToolCapabilities(false),
	)

	srv.AddTool(mcp.NewTool("seoul_overview",
		mcp.WithDescription("Seoul-wide apartment market overview: latest data month, city average price for a standard 84m² unit, and the highest and lowest priced districts."),
	), s.handleSeoulOverview)

	srv.AddTool(mcp.NewTool("district_ranking",
		mcp.WithDescription("Full price ranking of all 25 Seoul districts for the latest month, including national and Seoul percentile positions."),
	), s.handleDistrictRanking)

	srv.AddTool(mcp.NewTool("district_info",
		mcp.WithDescription("Details for one district: average price, rank, complex count, household count, average build year, and top complexes by price."),
		mcp.WithString("district", mcp.Required(), mcp.Description("District name in Korean, e.g. 강남구")),
	), s.handleDistrictInfo)

	srv.AddTool(mcp.NewTool("quintile_info",
		mcp.WithDescription("Price quintile buckets of the district ranking. Pass quintile 1-5 for one bucket, omit for all five."),
		mcp.WithNumber("quintile", mcp.Description("Bucket index 1 (most expensive) to 5 (least expensive)")),
	), s.handleQuintileInfo)

	srv.AddTool(mcp.NewTool("similar_districts",
		mcp.WithDescription("Districts whose average price falls within a tolerance band around the given district's price, with similarity scores."),
		mcp.WithString("district", mcp.Required(), mcp.Description("Target district name in Korean")),
		mcp.WithNumber("tolerance_pct", mcp.Description("Price band half-width in percent, default 15")),
	), s.handleSimilarDistricts)

	srv.AddTool(mcp.NewTool("adjacent_districts",
		mcp.WithDescription("Districts sharing a border with the given district, as a price comparison table with the target first."),
		mcp.WithString("district", mcp.Required(), mcp.Description("Target district name in Korean")),
	), s.handleAdjacentDistricts)

	return srv
}

// Run serves the tools over stdio until the client disconnects.
func (s *Server) Run(version string) error {
	return server.ServeStdio(s.MCPServer(version))
}
