package market

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const salesCSV = `aptcode,apt_name,gugun,deal_ym,price_84m2_manwon,build_year,household_count
A001,래미안원베일리,서초구,202506,350000,2023,2990
A002,반포자이,서초구,202506,320000,2009,3410
A003,상계주공,노원구,202506,65000,1988,2100
A004,빈값단지,노원구,202506,,1990,500
A005,과거단지,노원구,202505,60000,1995,700
`

func TestLoadSales(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, SalesFile, salesCSV)

	sales, err := LoadSales(path)
	if err != nil {
		t.Fatalf("LoadSales: %v", err)
	}
	// The empty-price row is dropped.
	if len(sales) != 4 {
		t.Fatalf("got %d rows, want 4", len(sales))
	}

	first := sales[0]
	if first.AptCode != "A001" || first.AptName != "래미안원베일리" || first.Gugun != "서초구" {
		t.Errorf("first row = %+v", first)
	}
	if first.DealYM != 202506 || first.Price84 != 350000 || first.BuildYear != 2023 || first.Households != 2990 {
		t.Errorf("first row values = %+v", first)
	}
}

func TestLoadSalesReorderedColumns(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "reordered.csv",
		"gugun,price_84m2_manwon,aptcode,apt_name,deal_ym,household_count,build_year\n"+
			"강남구,280000,B001,은마,202506,4400,1979\n")

	sales, err := LoadSales(path)
	if err != nil {
		t.Fatalf("LoadSales: %v", err)
	}
	if len(sales) != 1 || sales[0].Gugun != "강남구" || sales[0].Price84 != 280000 {
		t.Errorf("rows = %+v", sales)
	}
}

func TestLoadSalesMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.csv", "aptcode,apt_name\nA001,단지\n")
	if _, err := LoadSales(path); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestLoadSalesEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.csv",
		"aptcode,apt_name,gugun,deal_ym,price_84m2_manwon,build_year,household_count\n")
	if _, err := LoadSales(path); err == nil {
		t.Fatal("expected error for empty sales data")
	}
}

const bandsCSV = "\uFEFF" + `period,percentile,threshold_price_manwon
전체,1,250000
전체,5,180000
전체,10,140000
2024,1,240000
최근1년,5,170000
`

func TestLoadBands(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, NationalBandsFile, bandsCSV)

	bands, err := LoadBands(path)
	if err != nil {
		t.Fatalf("LoadBands: %v", err)
	}
	// Only 전체-period rows survive; the BOM on the header is handled.
	if len(bands) != 3 {
		t.Fatalf("got %d bands, want 3", len(bands))
	}
	if bands[0].Percentile != 1 || bands[0].Threshold != 250000 {
		t.Errorf("first band = %+v", bands[0])
	}
	if got := PercentileRank(190000, bands); got != 5 {
		t.Errorf("PercentileRank(190000) = %d, want 5", got)
	}
}

func TestLoadBandsMissingFile(t *testing.T) {
	if _, err := LoadBands(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
