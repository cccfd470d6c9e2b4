package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// SetViewStage switches the view stage and clears the selections the new
// stage invalidates. Switching to comparison without a selected district
// lands on district_selected instead. Returns the stage actually applied.
func (s *State) SetViewStage(stage ViewStage) (ViewStage, error) {
	if !ValidStage(stage) {
		return s.ViewStage, fmt.Errorf("invalid view stage %q", stage)
	}

	switch stage {
	case StageOverview:
		s.SelectedDistrict = ""
		s.SelectedQuintile = 0
		s.ClearComparison()
	case StageRanking:
		s.SelectedDistrict = ""
		s.ClearComparison()
	case StageDistrict:
		s.ClearComparison()
	case StageComparison:
		if s.SelectedDistrict == "" {
			slog.Warn("comparison stage requires a selected district",
				"session", s.ID)
			stage = StageDistrict
		}
	}

	s.ViewStage = stage
	return stage, nil
}

// SelectDistrict picks a district and drops any active comparison,
// which was computed against the previous selection.
func (s *State) SelectDistrict(district string) error {
	if district == "" {
		return fmt.Errorf("district name is empty")
	}
	s.SelectedDistrict = district
	s.ClearComparison()
	return nil
}

// ClearDistrict drops the district selection.
func (s *State) ClearDistrict() {
	s.SelectedDistrict = ""
}

// SelectQuintile picks a price bucket (1..5). Selecting the already
// active bucket toggles it off; 0 clears explicitly.
func (s *State) SelectQuintile(quintile int) error {
	if quintile < 0 || quintile > 5 {
		return fmt.Errorf("invalid quintile %d", quintile)
	}
	if quintile == 0 || s.SelectedQuintile == quintile {
		s.SelectedQuintile = 0
		return nil
	}
	s.SelectedQuintile = quintile
	return nil
}

// SetComparisonMode picks a comparison mode. Changing modes drops the
// districts computed for the previous one.
func (s *State) SetComparisonMode(mode ComparisonMode) error {
	if !ValidComparisonMode(mode) {
		return fmt.Errorf("invalid comparison mode %q", mode)
	}
	if s.ComparisonMode != mode {
		s.ComparisonDistricts = nil
	}
	s.ComparisonMode = mode
	return nil
}

// SetComparisonDistricts stores the computed comparison set.
func (s *State) SetComparisonDistricts(districts []string) {
	s.ComparisonDistricts = districts
}

// ClearComparison drops the comparison mode and its district set.
func (s *State) ClearComparison() {
	s.ComparisonMode = CompareNone
	s.ComparisonDistricts = nil
}

// AddMessage appends a chat message and returns it.
func (s *State) AddMessage(role Role, content string) (Message, error) {
	if content == "" {
		return Message{}, fmt.Errorf("message content is empty")
	}
	if role != RoleUser && role != RoleAssistant {
		return Message{}, fmt.Errorf("invalid message role %q", role)
	}
	msg := Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.Messages = append(s.Messages, msg)
	return msg, nil
}

// Validate checks the state for consistency.
func (s *State) Validate() error {
	if !ValidStage(s.ViewStage) {
		return fmt.Errorf("invalid view stage %q", s.ViewStage)
	}
	if !ValidComparisonMode(s.ComparisonMode) {
		return fmt.Errorf("invalid comparison mode %q", s.ComparisonMode)
	}
	if s.SelectedQuintile < 0 || s.SelectedQuintile > 5 {
		return fmt.Errorf("invalid quintile %d", s.SelectedQuintile)
	}
	if s.ViewStage == StageComparison && s.SelectedDistrict == "" {
		return fmt.Errorf("comparison stage without a selected district")
	}
	return nil
}

// Repair resets whatever Validate would reject to a safe value.
func (s *State) Repair() {
	if !ValidStage(s.ViewStage) {
		slog.Warn("repairing invalid view stage", "session", s.ID, "stage", s.ViewStage)
		s.ViewStage = StageOverview
	}
	if !ValidComparisonMode(s.ComparisonMode) {
		slog.Warn("repairing invalid comparison mode", "session", s.ID, "mode", s.ComparisonMode)
		s.ClearComparison()
	}
	if s.SelectedQuintile < 0 || s.SelectedQuintile > 5 {
		s.SelectedQuintile = 0
	}
	if s.ViewStage == StageComparison && s.SelectedDistrict == "" {
		slog.Warn("repairing comparison stage without district", "session", s.ID)
		s.ViewStage = StageDistrict
	}
}

// Summarize builds the compact notification view.
func (s *State) Summarize() Summary {
	return Summary{
		ID:                  s.ID,
		ViewStage:           s.ViewStage,
		SelectedDistrict:    s.SelectedDistrict,
		SelectedQuintile:    s.SelectedQuintile,
		ComparisonMode:      s.ComparisonMode,
		ComparisonDistricts: s.ComparisonDistricts,
		MessageCount:        len(s.Messages),
		UpdatedAt:           s.UpdatedAt,
	}
}

// clone deep-copies the state so readers never share slices with the store.
func (s *State) clone() *State {
	c := *s
	if s.ComparisonDistricts != nil {
		c.ComparisonDistricts = make([]string, len(s.ComparisonDistricts))
		copy(c.ComparisonDistricts, s.ComparisonDistricts)
	}
	if s.Messages != nil {
		c.Messages = make([]Message, len(s.Messages))
		copy(c.Messages, s.Messages)
	}
	return &c
}
