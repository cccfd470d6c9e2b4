package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSV file names under the market data directory.
const (
	SalesFile         = "apt_price_stats.csv"
	NationalBandsFile = "national_percent_ranking.csv"
	SeoulBandsFile    = "seoul_percent_ranking.csv"
)

// header reads the first record and maps column name to index.
// A UTF-8 BOM on the first column is stripped.
func header(r *csv.Reader) (map[string]int, error) {
	record, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := make(map[string]int, len(record))
	for i, name := range record {
		cols[strings.TrimPrefix(strings.TrimSpace(name), "\uFEFF")] = i
	}
	return cols, nil
}

func col(cols map[string]int, record []string, name string) (string, error) {
	i, ok := cols[name]
	if !ok {
		return "", fmt.Errorf("missing column %q", name)
	}
	if i >= len(record) {
		return "", fmt.Errorf("short record, no value for %q", name)
	}
	return strings.TrimSpace(record[i]), nil
}

// LoadSales reads the per-complex monthly price statistics CSV.
// Rows with no usable price are skipped rather than failing the load.
func LoadSales(path string) ([]Sale, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales data: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	cols, err := header(r)
	if err != nil {
		return nil, err
	}

	var sales []Sale
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sales row %d: %w", line, err)
		}

		sale, err := parseSale(cols, record)
		if err != nil {
			return nil, fmt.Errorf("bad sales row %d: %w", line, err)
		}
		if sale.Price84 <= 0 {
			continue
		}
		sales = append(sales, sale)
	}

	if len(sales) == 0 {
		return nil, fmt.Errorf("sales data %s contains no usable rows", path)
	}
	return sales, nil
}

func parseSale(cols map[string]int, record []string) (Sale, error) {
	var s Sale
	var err error

	if s.AptCode, err = col(cols, record, "aptcode"); err != nil {
		return s, err
	}
	if s.AptName, err = col(cols, record, "apt_name"); err != nil {
		return s, err
	}
	if s.Gugun, err = col(cols, record, "gugun"); err != nil {
		return s, err
	}

	dealYM, err := col(cols, record, "deal_ym")
	if err != nil {
		return s, err
	}
	if s.DealYM, err = strconv.Atoi(dealYM); err != nil {
		return s, fmt.Errorf("bad deal_ym %q: %w", dealYM, err)
	}

	price, err := col(cols, record, "price_84m2_manwon")
	if err != nil {
		return s, err
	}
	if price != "" {
		if s.Price84, err = strconv.ParseFloat(price, 64); err != nil {
			return s, fmt.Errorf("bad price %q: %w", price, err)
		}
	}

	// Build year and households may be absent for older complexes.
	if v, err := col(cols, record, "build_year"); err == nil && v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			s.BuildYear = year
		}
	}
	if v, err := col(cols, record, "household_count"); err == nil && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Households = n
		}
	}

	return s, nil
}

// LoadBands reads a percentile band CSV and keeps only the whole-period
// rows, sorted as stored (descending threshold).
func LoadBands(path string) ([]PercentBand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open band data: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	cols, err := header(r)
	if err != nil {
		return nil, err
	}

	var bands []PercentBand
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read band row %d: %w", line, err)
		}

		period, err := col(cols, record, "period")
		if err != nil {
			return nil, fmt.Errorf("bad band row %d: %w", line, err)
		}
		if period != "전체" {
			continue
		}

		var b PercentBand
		pct, err := col(cols, record, "percentile")
		if err != nil {
			return nil, fmt.Errorf("bad band row %d: %w", line, err)
		}
		if b.Percentile, err = strconv.Atoi(pct); err != nil {
			return nil, fmt.Errorf("bad percentile %q on row %d: %w", pct, line, err)
		}

		threshold, err := col(cols, record, "threshold_price_manwon")
		if err != nil {
			return nil, fmt.Errorf("bad band row %d: %w", line, err)
		}
		if b.Threshold, err = strconv.ParseFloat(threshold, 64); err != nil {
			return nil, fmt.Errorf("bad threshold %q on row %d: %w", threshold, line, err)
		}

		bands = append(bands, b)
	}

	return bands, nil
}
