package chat

import (
	"strings"

	"github.com/samber/lo"
)

// Command classifies a chat input before it reaches the model.
type Command int

const (
	// CommandChat forwards the input to the responder.
	CommandChat Command = iota
	// CommandShowRanking switches the panel to the ranking stage.
	CommandShowRanking
	// CommandResetView returns the panel to the overview stage.
	CommandResetView
)

var (
	rankingKeywords = []string{"랭킹", "네", "보여", "순위"}
	resetKeywords   = []string{"전체", "초기", "처음", "돌아가"}
)

// Classify routes an input by keyword. Ranking keywords win over reset
// keywords; anything else is a plain chat turn.
func Classify(input string) Command {
	contains := func(keyword string) bool { return strings.Contains(input, keyword) }
	if lo.SomeBy(rankingKeywords, contains) {
		return CommandShowRanking
	}
	if lo.SomeBy(resetKeywords, contains) {
		return CommandResetView
	}
	return CommandChat
}
