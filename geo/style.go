package geo

// QuintileColors are the ColorBrewer colors for price buckets 1 (most
// expensive) through 5.
var QuintileColors = [5]string{"#d73027", "#fc8d59", "#fee090", "#91bfdb", "#4575b4"}

// Style describes how one district is drawn on the map.
type Style struct {
	Color       string  `json:"color"`
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
	Weight      float64 `json:"weight"`
}

// SeoulBoundaryStyle outlines the whole city in the overview stage.
var SeoulBoundaryStyle = Style{
	Color:       "#FF6B6B",
	FillColor:   "#FFE0E0",
	FillOpacity: 0.15,
	Weight:      4,
}

// StyleParams carries the selection state that drives district styling.
type StyleParams struct {
	SelectedDistrict    string
	ComparisonDistricts []string
	// ComparisonMode distinguishes adjacent (orange) from similar-price
	// (purple) comparison highlighting.
	ComparisonMode    string
	SelectedQuintile  int
	QuintileDistricts []string
	QuintileColor     string
}

// StyleFor computes the draw style for one district. Priority order:
// selected district, comparison districts, quintile membership, default.
func StyleFor(district string, p StyleParams) Style {
	if p.SelectedDistrict != "" && district == p.SelectedDistrict {
		return Style{Color: "#FF0000", FillColor: "#FF6B6B", FillOpacity: 0.7, Weight: 4}
	}

	for _, d := range p.ComparisonDistricts {
		if d != district {
			continue
		}
		if p.ComparisonMode == "similar_price" {
			return Style{Color: "#9932CC", FillColor: "#DDA0DD", FillOpacity: 0.6, Weight: 3}
		}
		return Style{Color: "#FF8C00", FillColor: "#FFB347", FillOpacity: 0.5, Weight: 3}
	}

	if p.SelectedQuintile > 0 {
		for _, d := range p.QuintileDistricts {
			if d == district {
				return Style{Color: p.QuintileColor, FillColor: p.QuintileColor, FillOpacity: 0.6, Weight: 3}
			}
		}
		return Style{Color: "#CCCCCC", FillColor: "#F5F5F5", FillOpacity: 0.2, Weight: 1}
	}

	return Style{Color: "#4A90E2", FillColor: "#E8F4FD", FillOpacity: 0.1, Weight: 2.5}
}

// View is the camera position for the map panel.
type View struct {
	Center Coord `json:"center"`
	Zoom   int   `json:"zoom"`
}

// ViewFor zooms into the selected district when one is set, otherwise
// shows the whole city.
func ViewFor(selectedDistrict string) View {
	if selectedDistrict != "" {
		return View{Center: Center(selectedDistrict), Zoom: DistrictZoom}
	}
	return View{Center: SeoulCenter, Zoom: DefaultZoom}
}
