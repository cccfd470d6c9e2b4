package ws

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/marbleseoul/server/geo"
	"github.com/marbleseoul/server/rpc"
	"github.com/marbleseoul/server/session"
)

// handleMapState renders the session's selections into per-district draw
// styles and the camera position.
func (h *rpcMethodHandler) handleMapState(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.MapStateParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	state, err := h.sessions.Get(params.SessionID)
	if err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}

	styleParams := geo.StyleParams{
		SelectedDistrict:    state.SelectedDistrict,
		ComparisonDistricts: state.ComparisonDistricts,
		ComparisonMode:      string(state.ComparisonMode),
	}
	// Quintile highlighting only applies in the ranking stage.
	if state.ViewStage == session.StageRanking && state.SelectedQuintile > 0 {
		if snap := h.marketStore.Snapshot(); snap != nil {
			for _, q := range snap.Quintiles {
				if q.Index == state.SelectedQuintile {
					styleParams.SelectedQuintile = q.Index
					styleParams.QuintileDistricts = q.Districts
					styleParams.QuintileColor = q.Color
				}
			}
		}
	}

	districts := geo.Districts()
	result := rpc.MapStateResult{
		View:      geo.ViewFor(state.SelectedDistrict),
		Districts: make([]rpc.MapDistrict, 0, len(districts)),
	}
	for _, name := range districts {
		result.Districts = append(result.Districts, rpc.MapDistrict{
			Name:   name,
			Center: geo.Center(name),
			Style:  geo.StyleFor(name, styleParams),
		})
	}

	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send map state response", "error", err)
	}
}
