package ws

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/marbleseoul/server/market"
	"github.com/marbleseoul/server/rpc"
)

func (h *rpcMethodHandler) handleMarketSnapshot(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	snap := h.marketStore.Snapshot()
	if snap == nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInternalError, "market data not loaded")
		return
	}

	result := rpc.MarketSnapshotResult{
		Month:     snap.Month,
		Ranking:   snap.Ranking,
		Quintiles: snap.Quintiles,
	}
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send market snapshot response", "error", err)
	}
}

func (h *rpcMethodHandler) handleDistrictInfo(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.DistrictInfoParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	snap := h.marketStore.Snapshot()
	if snap == nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInternalError, "market data not loaded")
		return
	}

	info, ok := market.DistrictDetail(snap.Sales, params.District)
	if !ok {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "no data for district "+params.District)
		return
	}
	rank, _ := market.FindRanked(snap.Ranking, params.District)

	if err := conn.Reply(ctx, req.ID, rpc.DistrictInfoResult{Info: info, Rank: rank}); err != nil {
		h.log.Error("failed to send district info response", "error", err)
	}
}

func (h *rpcMethodHandler) handleMarketSubscribe(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	id := h.marketWatcher.Subscribe(h.state.getNotifier())
	h.state.trackSubscription(id, h.marketWatcher)
	h.log.Debug("market subscription added", "watchId", id)

	if err := conn.Reply(ctx, req.ID, rpc.SubscribeResult{ID: id}); err != nil {
		h.log.Error("failed to send market subscribe response", "error", err)
	}
}
