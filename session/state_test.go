package session

import "testing"

func TestSetViewStageClearsSelections(t *testing.T) {
	s := &State{
		ViewStage:           StageDistrict,
		SelectedDistrict:    "강남구",
		SelectedQuintile:    2,
		ComparisonMode:      CompareAdjacent,
		ComparisonDistricts: []string{"서초구"},
	}

	got, err := s.SetViewStage(StageOverview)
	if err != nil || got != StageOverview {
		t.Fatalf("SetViewStage(overview) = %v, %v", got, err)
	}
	if s.SelectedDistrict != "" || s.SelectedQuintile != 0 {
		t.Errorf("overview kept selections: %+v", s)
	}
	if s.ComparisonMode != CompareNone || s.ComparisonDistricts != nil {
		t.Errorf("overview kept comparison: %+v", s)
	}
}

func TestSetViewStageRankingClearsDistrictKeepsQuintile(t *testing.T) {
	s := &State{
		ViewStage:        StageDistrict,
		SelectedDistrict: "강남구",
		SelectedQuintile: 3,
		ComparisonMode:   CompareSimilarPrice,
	}

	if _, err := s.SetViewStage(StageRanking); err != nil {
		t.Fatal(err)
	}
	if s.SelectedDistrict != "" {
		t.Error("ranking stage kept the district selection")
	}
	if s.SelectedQuintile != 3 {
		t.Errorf("ranking stage dropped the quintile: %d", s.SelectedQuintile)
	}
	if s.ComparisonMode != CompareNone {
		t.Error("ranking stage kept the comparison mode")
	}
}

func TestSetViewStageComparisonRedirects(t *testing.T) {
	s := &State{ViewStage: StageOverview}
	got, err := s.SetViewStage(StageComparison)
	if err != nil {
		t.Fatal(err)
	}
	if got != StageDistrict || s.ViewStage != StageDistrict {
		t.Errorf("comparison without district landed on %q, want district_selected", got)
	}

	s.SelectedDistrict = "마포구"
	got, err = s.SetViewStage(StageComparison)
	if err != nil || got != StageComparison {
		t.Errorf("comparison with district = %q, %v", got, err)
	}
}

func TestSetViewStageInvalid(t *testing.T) {
	s := &State{ViewStage: StageOverview}
	if _, err := s.SetViewStage("panorama"); err == nil {
		t.Fatal("invalid stage accepted")
	}
	if s.ViewStage != StageOverview {
		t.Errorf("invalid stage mutated state to %q", s.ViewStage)
	}
}

func TestSelectDistrictClearsComparison(t *testing.T) {
	s := &State{
		ViewStage:           StageComparison,
		SelectedDistrict:    "강남구",
		ComparisonMode:      CompareAdjacent,
		ComparisonDistricts: []string{"서초구", "송파구"},
	}
	if err := s.SelectDistrict("용산구"); err != nil {
		t.Fatal(err)
	}
	if s.SelectedDistrict != "용산구" {
		t.Errorf("district = %q", s.SelectedDistrict)
	}
	if s.ComparisonMode != CompareNone || len(s.ComparisonDistricts) != 0 {
		t.Error("stale comparison survived a district change")
	}

	if err := s.SelectDistrict(""); err == nil {
		t.Error("empty district accepted")
	}
}

func TestSelectQuintileToggle(t *testing.T) {
	s := &State{ViewStage: StageRanking}

	if err := s.SelectQuintile(2); err != nil || s.SelectedQuintile != 2 {
		t.Fatalf("select: %v, quintile %d", err, s.SelectedQuintile)
	}
	// Same bucket again toggles off.
	if err := s.SelectQuintile(2); err != nil || s.SelectedQuintile != 0 {
		t.Fatalf("toggle off: %v, quintile %d", err, s.SelectedQuintile)
	}
	if err := s.SelectQuintile(4); err != nil || s.SelectedQuintile != 4 {
		t.Fatalf("reselect: %v, quintile %d", err, s.SelectedQuintile)
	}
	if err := s.SelectQuintile(0); err != nil || s.SelectedQuintile != 0 {
		t.Fatalf("explicit clear: %v, quintile %d", err, s.SelectedQuintile)
	}
	if err := s.SelectQuintile(6); err == nil {
		t.Error("quintile 6 accepted")
	}
	if err := s.SelectQuintile(-1); err == nil {
		t.Error("negative quintile accepted")
	}
}

func TestSetComparisonModeDropsStaleDistricts(t *testing.T) {
	s := &State{
		ComparisonMode:      CompareAdjacent,
		ComparisonDistricts: []string{"서초구"},
	}
	if err := s.SetComparisonMode(CompareSimilarPrice); err != nil {
		t.Fatal(err)
	}
	if len(s.ComparisonDistricts) != 0 {
		t.Error("mode change kept the old district set")
	}

	s.SetComparisonDistricts([]string{"송파구", "용산구"})
	if err := s.SetComparisonMode(CompareSimilarPrice); err != nil {
		t.Fatal(err)
	}
	if len(s.ComparisonDistricts) != 2 {
		t.Error("setting the same mode dropped the district set")
	}

	if err := s.SetComparisonMode("telepathy"); err == nil {
		t.Error("invalid comparison mode accepted")
	}
}

func TestAddMessage(t *testing.T) {
	s := &State{ViewStage: StageOverview}
	msg, err := s.AddMessage(RoleUser, "안녕하세요")
	if err != nil {
		t.Fatal(err)
	}
	if msg.ID == "" || msg.CreatedAt.IsZero() {
		t.Errorf("message missing ID or timestamp: %+v", msg)
	}
	if len(s.Messages) != 1 || s.Messages[0].Content != "안녕하세요" {
		t.Errorf("messages = %+v", s.Messages)
	}

	if _, err := s.AddMessage(RoleUser, ""); err == nil {
		t.Error("empty message accepted")
	}
	if _, err := s.AddMessage("system", "x"); err == nil {
		t.Error("unknown role accepted")
	}
}

func TestValidateAndRepair(t *testing.T) {
	s := &State{ViewStage: "wrecked", ComparisonMode: "telepathy", SelectedQuintile: 9}
	if err := s.Validate(); err == nil {
		t.Fatal("broken state validated")
	}
	s.Repair()
	if err := s.Validate(); err != nil {
		t.Fatalf("repaired state still invalid: %v", err)
	}
	if s.ViewStage != StageOverview || s.ComparisonMode != CompareNone || s.SelectedQuintile != 0 {
		t.Errorf("repair result = %+v", s)
	}

	// Comparison stage with no district repairs to district_selected.
	s = &State{ViewStage: StageComparison}
	if err := s.Validate(); err == nil {
		t.Fatal("comparison without district validated")
	}
	s.Repair()
	if s.ViewStage != StageDistrict {
		t.Errorf("repair landed on %q", s.ViewStage)
	}
}

func TestSummarize(t *testing.T) {
	s := &State{
		ID:               "s1",
		ViewStage:        StageDistrict,
		SelectedDistrict: "강남구",
	}
	s.AddMessage(RoleAssistant, "hi")
	sum := s.Summarize()
	if sum.ID != "s1" || sum.ViewStage != StageDistrict || sum.MessageCount != 1 {
		t.Errorf("summary = %+v", sum)
	}
}
