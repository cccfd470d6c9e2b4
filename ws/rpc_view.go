package ws

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/marbleseoul/server/geo"
	"github.com/marbleseoul/server/market"
	"github.com/marbleseoul/server/rpc"
	"github.com/marbleseoul/server/session"
)

func (h *rpcMethodHandler) handleViewSetStage(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.ViewSetStageParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	state, err := h.chatService.SetViewStage(params.SessionID, params.Stage)
	if err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}
	h.log.Debug("view stage set",
		"session", params.SessionID, "requested", params.Stage, "applied", state.ViewStage)

	if err := conn.Reply(ctx, req.ID, rpc.SessionResult{Session: state}); err != nil {
		h.log.Error("failed to send view stage response", "error", err)
	}
}

func (h *rpcMethodHandler) handleDistrictSelect(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.DistrictSelectParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	state, err := h.chatService.SelectDistrict(params.SessionID, params.District)
	if err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}

	if err := conn.Reply(ctx, req.ID, rpc.SessionResult{Session: state}); err != nil {
		h.log.Error("failed to send district select response", "error", err)
	}
}

func (h *rpcMethodHandler) handleQuintileSelect(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.QuintileSelectParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	state, err := h.chatService.SelectQuintile(params.SessionID, params.Quintile)
	if err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}

	if err := conn.Reply(ctx, req.ID, rpc.SessionResult{Session: state}); err != nil {
		h.log.Error("failed to send quintile select response", "error", err)
	}
}

func (h *rpcMethodHandler) handleComparisonSetMode(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.ComparisonSetModeParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	state, err := h.chatService.SetComparisonMode(params.SessionID, params.Mode)
	if err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}

	if err := conn.Reply(ctx, req.ID, rpc.SessionResult{Session: state}); err != nil {
		h.log.Error("failed to send comparison mode response", "error", err)
	}
}

func (h *rpcMethodHandler) handleComparisonClear(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.SessionIDParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	state, err := h.chatService.ClearComparison(params.SessionID)
	if err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}

	if err := conn.Reply(ctx, req.ID, rpc.SessionResult{Session: state}); err != nil {
		h.log.Error("failed to send comparison clear response", "error", err)
	}
}

// handleComparisonData builds the side-by-side table for the session's
// active comparison.
func (h *rpcMethodHandler) handleComparisonData(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.SessionIDParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	state, err := h.sessions.Get(params.SessionID)
	if err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}
	if state.ComparisonMode == session.CompareNone || state.SelectedDistrict == "" {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidRequest, "no active comparison")
		return
	}

	snap := h.marketStore.Snapshot()
	if snap == nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInternalError, "market data not loaded")
		return
	}

	var rows []market.ComparisonRow
	switch state.ComparisonMode {
	case session.CompareAdjacent:
		rows, err = market.AdjacentComparison(
			state.SelectedDistrict, geo.Adjacent(state.SelectedDistrict), snap.Ranking, snap.Sales)
	case session.CompareSimilarPrice:
		var result market.SimilarResult
		result, err = market.SimilarPriceDistricts(
			state.SelectedDistrict, snap.Ranking, snap.Sales, market.DefaultTolerancePct)
		rows = result.Rows
	}
	if err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInternalError, err.Error())
		return
	}

	result := rpc.ComparisonDataResult{Mode: state.ComparisonMode, Rows: rows}
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send comparison data response", "error", err)
	}
}
