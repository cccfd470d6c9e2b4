package geo

import "testing"

func TestDistrictsComplete(t *testing.T) {
	names := Districts()
	if len(names) != 25 {
		t.Fatalf("expected 25 districts, got %d", len(names))
	}
	for _, name := range names {
		if !IsDistrict(name) {
			t.Errorf("Districts() returned unknown name %q", name)
		}
		c := Center(name)
		if c.Lat < 37.4 || c.Lat > 37.7 || c.Lng < 126.7 || c.Lng > 127.2 {
			t.Errorf("%s center %+v outside Seoul bounds", name, c)
		}
	}
}

func TestDistrictCodes(t *testing.T) {
	if len(districtCodes) != 25 {
		t.Fatalf("expected 25 district codes, got %d", len(districtCodes))
	}
	for code, want := range districtCodes {
		got, ok := NameByCode(code)
		if !ok || got != want {
			t.Errorf("NameByCode(%q) = %q, %v; want %q", code, got, ok, want)
		}
		if !IsDistrict(want) {
			t.Errorf("code %s maps to unknown district %q", code, want)
		}
	}
	if _, ok := NameByCode("99999"); ok {
		t.Error("NameByCode accepted an unknown code")
	}
}

func TestAdjacencySymmetric(t *testing.T) {
	contains := func(list []string, name string) bool {
		for _, d := range list {
			if d == name {
				return true
			}
		}
		return false
	}
	if len(adjacency) != 25 {
		t.Fatalf("expected adjacency entries for 25 districts, got %d", len(adjacency))
	}
	for district, neighbors := range adjacency {
		if !IsDistrict(district) {
			t.Errorf("adjacency key %q is not a district", district)
		}
		for _, n := range neighbors {
			if n == district {
				t.Errorf("%s lists itself as a neighbor", district)
			}
			if !IsDistrict(n) {
				t.Errorf("%s lists unknown neighbor %q", district, n)
				continue
			}
			if !contains(adjacency[n], district) {
				t.Errorf("adjacency not symmetric: %s -> %s but not back", district, n)
			}
		}
	}
}

func TestAdjacentCapped(t *testing.T) {
	for _, district := range Districts() {
		got := Adjacent(district)
		if len(got) == 0 {
			t.Errorf("Adjacent(%q) returned no neighbors", district)
		}
		if len(got) > maxAdjacent {
			t.Errorf("Adjacent(%q) returned %d neighbors, cap is %d", district, len(got), maxAdjacent)
		}
	}
	if got := Adjacent("부산구"); got != nil {
		t.Errorf("Adjacent for unknown district = %v, want nil", got)
	}
}

func TestAdjacentCopies(t *testing.T) {
	a := Adjacent("도봉구")
	if len(a) == 0 {
		t.Fatal("no neighbors for 도봉구")
	}
	a[0] = "한강"
	b := Adjacent("도봉구")
	if b[0] == "한강" {
		t.Error("Adjacent returned a slice aliasing internal state")
	}
}

func TestStyleForSelected(t *testing.T) {
	p := StyleParams{SelectedDistrict: "강남구", ComparisonDistricts: []string{"서초구"}}
	got := StyleFor("강남구", p)
	if got.Color != "#FF0000" || got.FillColor != "#FF6B6B" {
		t.Errorf("selected district style = %+v", got)
	}
	if got.FillOpacity != 0.7 || got.Weight != 4 {
		t.Errorf("selected district opacity/weight = %+v", got)
	}
}

func TestStyleForComparison(t *testing.T) {
	p := StyleParams{
		SelectedDistrict:    "강남구",
		ComparisonDistricts: []string{"서초구", "송파구"},
		ComparisonMode:      "adjacent",
	}
	got := StyleFor("서초구", p)
	if got.Color != "#FF8C00" || got.FillColor != "#FFB347" {
		t.Errorf("adjacent comparison style = %+v", got)
	}

	p.ComparisonMode = "similar_price"
	got = StyleFor("송파구", p)
	if got.Color != "#9932CC" || got.FillColor != "#DDA0DD" {
		t.Errorf("similar-price comparison style = %+v", got)
	}
}

func TestStyleForQuintile(t *testing.T) {
	p := StyleParams{
		SelectedQuintile:  1,
		QuintileDistricts: []string{"강남구", "서초구"},
		QuintileColor:     QuintileColors[0],
	}
	got := StyleFor("강남구", p)
	if got.Color != QuintileColors[0] || got.FillOpacity != 0.6 {
		t.Errorf("quintile member style = %+v", got)
	}
	got = StyleFor("도봉구", p)
	if got.Color != "#CCCCCC" || got.FillOpacity != 0.2 {
		t.Errorf("dimmed non-member style = %+v", got)
	}
}

func TestStyleForDefault(t *testing.T) {
	got := StyleFor("마포구", StyleParams{})
	if got.Color != "#4A90E2" || got.FillColor != "#E8F4FD" {
		t.Errorf("default style = %+v", got)
	}
}

func TestViewFor(t *testing.T) {
	v := ViewFor("")
	if v.Center != SeoulCenter || v.Zoom != DefaultZoom {
		t.Errorf("city view = %+v", v)
	}
	v = ViewFor("송파구")
	if v.Center != Center("송파구") || v.Zoom != DistrictZoom {
		t.Errorf("district view = %+v", v)
	}
}
