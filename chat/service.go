package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/marbleseoul/server/format"
	"github.com/marbleseoul/server/geo"
	"github.com/marbleseoul/server/logger"
	"github.com/marbleseoul/server/market"
	"github.com/marbleseoul/server/session"
)

// Transcripts receives every message appended to a session. The badger
// transcript store implements this; tests use a no-op.
type Transcripts interface {
	Append(sessionID string, msg session.Message) error
}

// Service drives the chat panel: it owns the keyword commands, the
// canned announcements for map interactions, and the model round-trip.
type Service struct {
	sessions    *session.Store
	market      *market.Store
	responder   Responder
	transcripts Transcripts
	maxLen      int
}

func NewService(sessions *session.Store, marketStore *market.Store, responder Responder, transcripts Transcripts, maxMessageLen int) *Service {
	return &Service{
		sessions:    sessions,
		market:      marketStore,
		responder:   responder,
		transcripts: transcripts,
		maxLen:      maxMessageLen,
	}
}

// LLMEnabled reports whether a hosted model backs the responder.
func (s *Service) LLMEnabled() bool {
	_, echo := s.responder.(Echo)
	return !echo
}

func (s *Service) record(sessionID string, msg session.Message) {
	if s.transcripts == nil {
		return
	}
	if err := s.transcripts.Append(sessionID, msg); err != nil {
		slog.Error("failed to persist chat message",
			"session", sessionID, "message", msg.ID, "error", err)
	}
}

// addMessage appends one message through the session store and mirrors
// it to the transcript log.
func (s *Service) addMessage(sessionID string, role session.Role, content string) (*session.State, error) {
	var added session.Message
	state, err := s.sessions.Update(sessionID, func(st *session.State) error {
		msg, err := st.AddMessage(role, content)
		added = msg
		return err
	})
	if err != nil {
		return nil, err
	}
	s.record(sessionID, added)
	return state, nil
}

// CreateSession starts a session and seeds the greeting messages.
func (s *Service) CreateSession() (*session.State, error) {
	state := s.sessions.Create()

	for _, msg := range s.greetings() {
		updated, err := s.addMessage(state.ID, session.RoleAssistant, msg)
		if err != nil {
			return nil, err
		}
		state = updated
	}
	return state, nil
}

func (s *Service) greetings() []string {
	greetings := make([]string, 0, 2)
	if snap := s.market.Snapshot(); snap != nil && len(snap.Ranking) > 0 {
		greetings = append(greetings, fmt.Sprintf(
			"안녕하세요! 서울시 %d년 %d월 아파트 국평(84m²) 평균 매매가격은 **%s**입니다.",
			snap.Month/100, snap.Month%100, format.PriceEok(seoulAverage(snap.Ranking))))
	} else {
		greetings = append(greetings, "안녕하세요! 서울시 아파트 시세 데이터를 준비하고 있습니다.")
	}
	greetings = append(greetings,
		"🗺️ **모드 선택:**\n- **지도 상단의 모드 버튼**을 클릭하여 원하는 분석 모드를 선택하세요!\n- 각 모드별로 다른 분석 기능을 제공합니다.")
	return greetings
}

// HandleMessage processes one user input: keyword commands switch the
// view stage; everything else goes to the responder with the current
// stage context. The user message and the reply are both appended.
func (s *Service) HandleMessage(ctx context.Context, sessionID, input string) (*session.State, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("message is empty")
	}
	if utf8.RuneCountInString(input) > s.maxLen {
		return nil, fmt.Errorf("message exceeds %d characters", s.maxLen)
	}

	if _, err := s.addMessage(sessionID, session.RoleUser, input); err != nil {
		return nil, err
	}

	switch Classify(input) {
	case CommandShowRanking:
		return s.showRanking(sessionID)
	case CommandResetView:
		return s.backToOverview(sessionID)
	}
	return s.respond(ctx, sessionID, input)
}

func (s *Service) showRanking(sessionID string) (*session.State, error) {
	if _, err := s.sessions.Update(sessionID, func(st *session.State) error {
		_, err := st.SetViewStage(session.StageRanking)
		return err
	}); err != nil {
		return nil, err
	}
	return s.addMessage(sessionID, session.RoleAssistant,
		"📊 서울시 25개 자치구의 아파트 매매가 랭킹을 표시했습니다.\n\n"+
			"지도에서 **가격 구간 버튼**을 클릭하면 해당 구간의 자치구들이 강조됩니다. "+
			"이 지역에 대해 무엇이 궁금하신가요?")
}

func (s *Service) backToOverview(sessionID string) (*session.State, error) {
	if _, err := s.sessions.Update(sessionID, func(st *session.State) error {
		_, err := st.SetViewStage(session.StageOverview)
		return err
	}); err != nil {
		return nil, err
	}
	return s.addMessage(sessionID, session.RoleAssistant,
		"🏢 서울 전체 현황으로 돌아왔습니다.\n\n다시 자치구별 랭킹을 보시려면 **'랭킹'**을 입력해 주세요.")
}

func (s *Service) respond(ctx context.Context, sessionID, input string) (*session.State, error) {
	state, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	reply, err := s.responder.Respond(ctx, input, ModeContext(state, s.market.Snapshot()))
	if err != nil {
		slog.Error("responder failed",
			"session", sessionID, "input", logger.Truncate(input, 80), "error", err)
		reply = fmt.Sprintf("죄송합니다. 오류가 발생했습니다: %v", err)
	}
	return s.addMessage(sessionID, session.RoleAssistant, reply)
}

// SetViewStage switches the stage and returns the updated state. The
// redirect rule for comparison applies inside the state transition.
func (s *Service) SetViewStage(sessionID string, stage session.ViewStage) (*session.State, error) {
	return s.sessions.Update(sessionID, func(st *session.State) error {
		_, err := st.SetViewStage(stage)
		return err
	})
}

// SelectDistrict picks a district and announces its rank and price.
func (s *Service) SelectDistrict(sessionID, district string) (*session.State, error) {
	if !geo.IsDistrict(district) {
		return nil, fmt.Errorf("unknown district %q", district)
	}

	if _, err := s.sessions.Update(sessionID, func(st *session.State) error {
		if err := st.SelectDistrict(district); err != nil {
			return err
		}
		_, err := st.SetViewStage(session.StageDistrict)
		return err
	}); err != nil {
		return nil, err
	}

	snap := s.market.Snapshot()
	if snap == nil {
		return s.sessions.Get(sessionID)
	}
	row, ok := market.FindRanked(snap.Ranking, district)
	if !ok {
		return s.sessions.Get(sessionID)
	}

	return s.addMessage(sessionID, session.RoleAssistant, fmt.Sprintf(
		"🗺️ **%s**을(를) 지도에서 선택하셨습니다!\n\n"+
			"- **서울시 매매가 순위**: **%d위**\n"+
			"- **국평(84m²) 평균 매매가**: **%s**",
		district, row.Rank, format.PriceEok(row.Price84)))
}

// SelectQuintile toggles a price bucket and announces the result.
func (s *Service) SelectQuintile(sessionID string, quintile int) (*session.State, error) {
	var selected int
	if _, err := s.sessions.Update(sessionID, func(st *session.State) error {
		if err := st.SelectQuintile(quintile); err != nil {
			return err
		}
		selected = st.SelectedQuintile
		return nil
	}); err != nil {
		return nil, err
	}

	if selected == 0 {
		return s.addMessage(sessionID, session.RoleAssistant,
			"가격 구간 선택이 해제되었습니다. 전체 서울시 현황으로 돌아갑니다.")
	}

	snap := s.market.Snapshot()
	if snap == nil {
		return s.sessions.Get(sessionID)
	}
	for _, q := range snap.Quintiles {
		if q.Index != selected {
			continue
		}
		listed := q.Districts
		suffix := ""
		if len(listed) > 3 {
			suffix = fmt.Sprintf(" 외 %d개", len(listed)-3)
			listed = listed[:3]
		}
		return s.addMessage(sessionID, session.RoleAssistant, fmt.Sprintf(
			"**%d구간**이 선택되었습니다!\n\n"+
				"- **가격 범위**: %s ~ %s\n"+
				"- **포함 자치구**: %d개\n"+
				"- **자치구 목록**: %s%s\n\n"+
				"이 구간에 대해 더 자세히 알고 싶으시다면 질문해 보세요!",
			q.Index, format.PriceEok(q.PriceMin), format.PriceEok(q.PriceMax),
			q.Count, strings.Join(listed, ", "), suffix))
	}
	return s.sessions.Get(sessionID)
}

// SetComparisonMode computes the comparison set for the selected district
// and announces a summary of the matches.
func (s *Service) SetComparisonMode(sessionID string, mode session.ComparisonMode) (*session.State, error) {
	state, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if state.SelectedDistrict == "" {
		return nil, fmt.Errorf("comparison requires a selected district")
	}

	snap := s.market.Snapshot()
	if snap == nil {
		return nil, fmt.Errorf("market data not loaded")
	}

	var districts []string
	var summary string
	switch mode {
	case session.CompareAdjacent:
		districts = geo.Adjacent(state.SelectedDistrict)
		target := fmt.Sprintf("**%s**", state.SelectedDistrict)
		if row, ok := market.FindRanked(snap.Ranking, state.SelectedDistrict); ok {
			target = fmt.Sprintf("**%s** (순위: %d위)", state.SelectedDistrict, row.Rank)
		}
		summary = fmt.Sprintf(
			"📍 %s와 인접한 자치구 **%d개**를 찾았습니다.\n\n**인접 자치구**: %s",
			target, len(districts), strings.Join(districts, ", "))
	case session.CompareSimilarPrice:
		result, err := market.SimilarPriceDistricts(
			state.SelectedDistrict, snap.Ranking, snap.Sales, market.DefaultTolerancePct)
		if err != nil {
			return nil, err
		}
		districts = result.SimilarDistrictNames()
		if len(districts) == 0 {
			summary = fmt.Sprintf(
				"%s(%s)와 유사한 가격대(±%.0f%%)의 자치구를 찾을 수 없습니다.",
				result.TargetDistrict, format.Manwon(result.TargetPrice), result.TolerancePct)
		} else {
			summary = fmt.Sprintf(
				"💰 **%s** (%s, %d위)와 유사한 가격대의 자치구 **%d개**를 찾았습니다.\n\n"+
					"**가격 범위**: %s ~ %s (±%.0f%%)\n**평균 유사도**: %.1f점",
				result.TargetDistrict, format.Manwon(result.TargetPrice), result.TargetRank,
				len(districts), format.Manwon(result.PriceMin), format.Manwon(result.PriceMax),
				result.TolerancePct, result.AvgSimilarity)
		}
	default:
		return nil, fmt.Errorf("invalid comparison mode %q", mode)
	}

	if _, err := s.sessions.Update(sessionID, func(st *session.State) error {
		if st.SelectedDistrict == "" {
			return fmt.Errorf("comparison requires a selected district")
		}
		if _, err := st.SetViewStage(session.StageComparison); err != nil {
			return err
		}
		if err := st.SetComparisonMode(mode); err != nil {
			return err
		}
		st.SetComparisonDistricts(districts)
		return nil
	}); err != nil {
		return nil, err
	}

	return s.addMessage(sessionID, session.RoleAssistant, summary)
}

// ClearComparison drops the comparison selection.
func (s *Service) ClearComparison(sessionID string) (*session.State, error) {
	return s.sessions.Update(sessionID, func(st *session.State) error {
		st.ClearComparison()
		return nil
	})
}
