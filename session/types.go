// Package session holds per-visitor UI state: the active view stage,
// district and quintile selections, comparison mode, and the chat
// transcript shown in the panel.
package session

import "time"

// ViewStage is the active analysis mode of the panel.
type ViewStage string

const (
	StageOverview   ViewStage = "overview"
	StageRanking    ViewStage = "gu_ranking"
	StageDistrict   ViewStage = "district_selected"
	StageComparison ViewStage = "comparison"
)

// ValidStage reports whether s is a known view stage.
func ValidStage(s ViewStage) bool {
	switch s {
	case StageOverview, StageRanking, StageDistrict, StageComparison:
		return true
	}
	return false
}

// ComparisonMode selects how comparison districts are chosen.
// Empty means no comparison is active.
type ComparisonMode string

const (
	CompareNone         ComparisonMode = ""
	CompareAdjacent     ComparisonMode = "adjacent"
	CompareSimilarPrice ComparisonMode = "similar_price"
)

// ValidComparisonMode reports whether m is a known comparison mode.
func ValidComparisonMode(m ComparisonMode) bool {
	switch m {
	case CompareNone, CompareAdjacent, CompareSimilarPrice:
		return true
	}
	return false
}

// Role identifies who wrote a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// State is the full UI state of one session.
type State struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ViewStage        ViewStage `json:"view_stage"`
	SelectedDistrict string    `json:"selected_district,omitempty"`
	// SelectedQuintile is 1..5, or 0 when no bucket is selected.
	SelectedQuintile    int            `json:"selected_quintile,omitempty"`
	ComparisonMode      ComparisonMode `json:"comparison_mode,omitempty"`
	ComparisonDistricts []string       `json:"comparison_districts,omitempty"`

	Messages []Message `json:"messages"`
}

// Summary is the compact state view sent in change notifications.
type Summary struct {
	ID                  string         `json:"id"`
	ViewStage           ViewStage      `json:"view_stage"`
	SelectedDistrict    string         `json:"selected_district,omitempty"`
	SelectedQuintile    int            `json:"selected_quintile,omitempty"`
	ComparisonMode      ComparisonMode `json:"comparison_mode,omitempty"`
	ComparisonDistricts []string       `json:"comparison_districts,omitempty"`
	MessageCount        int            `json:"message_count"`
	UpdatedAt           time.Time      `json:"updated_at"`
}
