// Package geo holds the Seoul district geography used by the map panel:
// district names and codes, center coordinates, and the adjacency table
// derived from the administrative boundary dataset.
package geo

import "sort"

// Coord is a WGS84 latitude/longitude pair.
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SeoulCenter is the default map center.
var SeoulCenter = Coord{Lat: 37.5665, Lng: 126.9780}

const (
	// DefaultZoom shows the whole city.
	DefaultZoom = 11
	// DistrictZoom is used when a single district is selected.
	DistrictZoom = 13
)

// districtCodes maps the administrative SIGUNGU code to the district name.
var districtCodes = map[string]string{
	"11010": "종로구", "11020": "중구", "11030": "용산구", "11040": "성동구",
	"11050": "광진구", "11060": "동대문구", "11070": "중랑구", "11080": "성북구",
	"11090": "강북구", "11100": "도봉구", "11110": "노원구", "11120": "은평구",
	"11130": "서대문구", "11140": "마포구", "11150": "양천구", "11160": "강서구",
	"11170": "구로구", "11180": "금천구", "11190": "영등포구", "11200": "동작구",
	"11210": "관악구", "11220": "서초구", "11230": "강남구", "11240": "송파구",
	"11250": "강동구",
}

// districtCenters holds per-district center coordinates (near each district office).
var districtCenters = map[string]Coord{
	"종로구":  {37.5735, 126.9792},
	"중구":   {37.5641, 126.9976},
	"용산구":  {37.5326, 126.9895},
	"성동구":  {37.5633, 127.0369},
	"광진구":  {37.5384, 127.0822},
	"동대문구": {37.5744, 127.0398},
	"중랑구":  {37.6066, 127.0925},
	"성북구":  {37.5894, 127.0166},
	"강북구":  {37.6397, 127.0256},
	"도봉구":  {37.6668, 127.0471},
	"노원구":  {37.6543, 127.0565},
	"은평구":  {37.6026, 126.9289},
	"서대문구": {37.5791, 126.9368},
	"마포구":  {37.5663, 126.9019},
	"양천구":  {37.5169, 126.8664},
	"강서구":  {37.5509, 126.8495},
	"구로구":  {37.4954, 126.8874},
	"금천구":  {37.4569, 126.8954},
	"영등포구": {37.5263, 126.8962},
	"동작구":  {37.5124, 126.9392},
	"관악구":  {37.4784, 126.9516},
	"서초구":  {37.4837, 127.0323},
	"강남구":  {37.5172, 127.0473},
	"송파구":  {37.5145, 127.1059},
	"강동구":  {37.5301, 127.1238},
}

// adjacency is the curated boundary-contact table for the 25 districts,
// extracted once from the administrative boundary shapefile. Entries are
// symmetric.
var adjacency = map[string][]string{
	"종로구":  {"은평구", "서대문구", "중구", "성북구", "동대문구"},
	"중구":   {"종로구", "서대문구", "용산구", "성동구", "동대문구"},
	"용산구":  {"중구", "마포구", "성동구", "동작구", "영등포구"},
	"성동구":  {"중구", "용산구", "동대문구", "광진구", "강남구"},
	"광진구":  {"성동구", "동대문구", "중랑구", "송파구", "강동구"},
	"동대문구": {"종로구", "중구", "성동구", "광진구", "중랑구", "성북구"},
	"중랑구":  {"동대문구", "광진구", "노원구", "성북구"},
	"성북구":  {"종로구", "동대문구", "중랑구", "강북구", "노원구"},
	"강북구":  {"성북구", "도봉구", "노원구"},
	"도봉구":  {"강북구", "노원구"},
	"노원구":  {"도봉구", "강북구", "성북구", "중랑구"},
	"은평구":  {"종로구", "서대문구", "마포구"},
	"서대문구": {"은평구", "종로구", "중구", "마포구"},
	"마포구":  {"은평구", "서대문구", "용산구", "영등포구", "강서구"},
	"양천구":  {"강서구", "구로구", "영등포구"},
	"강서구":  {"마포구", "양천구", "구로구", "영등포구"},
	"구로구":  {"강서구", "양천구", "영등포구", "금천구", "관악구"},
	"금천구":  {"구로구", "관악구"},
	"영등포구": {"마포구", "용산구", "양천구", "강서구", "구로구", "동작구"},
	"동작구":  {"영등포구", "용산구", "관악구", "서초구"},
	"관악구":  {"동작구", "구로구", "금천구", "서초구"},
	"서초구":  {"관악구", "동작구", "강남구"},
	"강남구":  {"서초구", "성동구", "송파구"},
	"송파구":  {"강남구", "광진구", "강동구"},
	"강동구":  {"송파구", "광진구"},
}

// maxAdjacent caps the neighbor list; more clutters the comparison view.
const maxAdjacent = 6

// Districts returns all district names in a stable order.
func Districts() []string {
	names := make([]string, 0, len(districtCenters))
	for name := range districtCenters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsDistrict reports whether name is a known Seoul district.
func IsDistrict(name string) bool {
	_, ok := districtCenters[name]
	return ok
}

// Center returns the center coordinate for a district, or the Seoul
// center when the district is unknown.
func Center(district string) Coord {
	if c, ok := districtCenters[district]; ok {
		return c
	}
	return SeoulCenter
}

// NameByCode resolves an administrative SIGUNGU code to a district name.
func NameByCode(code string) (string, bool) {
	name, ok := districtCodes[code]
	return name, ok
}

// CodeByName is the reverse lookup of NameByCode.
func CodeByName(district string) (string, bool) {
	for code, name := range districtCodes {
		if name == district {
			return code, true
		}
	}
	return "", false
}

// Adjacent returns the districts sharing a boundary with the given one,
// capped at maxAdjacent entries. Unknown districts yield nil.
func Adjacent(district string) []string {
	neighbors, ok := adjacency[district]
	if !ok {
		return nil
	}
	if len(neighbors) > maxAdjacent {
		neighbors = neighbors[:maxAdjacent]
	}
	out := make([]string, len(neighbors))
	copy(out, neighbors)
	return out
}
