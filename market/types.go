// Package market loads the Seoul apartment transaction statistics and
// computes district rankings, price quintiles, and comparison analyses.
// Prices are in manwon (10,000 KRW) for an 84m² unit.
package market

// Sale is one apartment complex's monthly price statistic.
type Sale struct {
	AptCode    string
	AptName    string
	Gugun      string
	DealYM     int
	Price84    float64
	BuildYear  int
	Households int
}

// PercentBand maps a price threshold to a percentile. A price at or
// above Threshold belongs to the top Percentile percent.
type PercentBand struct {
	Percentile int
	Threshold  float64
}

// RankedDistrict is one row of the district price ranking.
type RankedDistrict struct {
	Rank          int     `json:"rank"`
	Gugun         string  `json:"gugun"`
	Price84       float64 `json:"price_84m2_manwon"`
	NationalPct   int     `json:"national_pct"`
	SeoulPct      int     `json:"seoul_pct"`
	NationalLabel string  `json:"national_label"`
	SeoulLabel    string  `json:"seoul_label"`
}

// Quintile is one of the five price buckets the ranking splits into.
type Quintile struct {
	Index       int      `json:"index"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Districts   []string `json:"districts"`
	Count       int      `json:"count"`
	PriceMin    float64  `json:"price_min"`
	PriceMax    float64  `json:"price_max"`
	PriceRange  string   `json:"price_range"`
}

// ComplexInfo summarizes one apartment complex inside a district.
type ComplexInfo struct {
	AptName    string  `json:"apt_name"`
	AvgPrice   float64 `json:"avg_price_manwon"`
	BuildYear  int     `json:"build_year"`
	Households int     `json:"household_count"`
}

// DistrictInfo is the detail panel for a selected district.
type DistrictInfo struct {
	Gugun           string        `json:"gugun"`
	ComplexCount    int           `json:"complex_count"`
	AvgPrice        float64       `json:"avg_price_manwon"`
	MaxPrice        float64       `json:"max_price_manwon"`
	MinPrice        float64       `json:"min_price_manwon"`
	AvgBuildYear    float64       `json:"avg_build_year"`
	TotalHouseholds int           `json:"total_households"`
	TopComplexes    []ComplexInfo `json:"top_complexes"`
}

// SimilarDistrict is one match from the similar-price search.
type SimilarDistrict struct {
	Gugun      string  `json:"gugun"`
	Rank       int     `json:"rank"`
	Price84    float64 `json:"price_84m2_manwon"`
	DiffPct    float64 `json:"price_diff_pct"`
	Similarity float64 `json:"similarity_score"`
}

// ComparisonRow is one district in the side-by-side comparison table,
// the target district first.
type ComparisonRow struct {
	Gugun           string  `json:"gugun"`
	Rank            int     `json:"rank"`
	Price84         float64 `json:"price_84m2_manwon"`
	DiffPct         float64 `json:"price_diff_pct"`
	Similarity      float64 `json:"similarity_score"`
	AvgBuildYear    float64 `json:"avg_build_year"`
	TotalHouseholds int     `json:"total_households"`
	IsTarget        bool    `json:"is_target"`
}

// SimilarResult is the full similar-price analysis for one district.
type SimilarResult struct {
	TargetDistrict string            `json:"target_district"`
	TargetPrice    float64           `json:"target_price"`
	TargetRank     int               `json:"target_rank"`
	PriceMin       float64           `json:"price_min"`
	PriceMax       float64           `json:"price_max"`
	TolerancePct   float64           `json:"tolerance_pct"`
	AvgSimilarity  float64           `json:"avg_similarity"`
	Similar        []SimilarDistrict `json:"similar_districts"`
	Rows           []ComparisonRow   `json:"comparison_rows"`
}
