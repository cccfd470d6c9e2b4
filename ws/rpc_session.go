package ws

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/marbleseoul/server/rpc"
	"github.com/marbleseoul/server/session"
)

func (h *rpcMethodHandler) handleSessionCreate(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	state, err := h.chatService.CreateSession()
	if err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}
	h.log.Info("session created", "session", state.ID)

	if err := conn.Reply(ctx, req.ID, rpc.SessionResult{Session: state}); err != nil {
		h.log.Error("failed to send session create response", "error", err)
	}
}

func (h *rpcMethodHandler) handleSessionGet(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
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

	if err := conn.Reply(ctx, req.ID, rpc.SessionResult{Session: state}); err != nil {
		h.log.Error("failed to send session get response", "error", err)
	}
}

func (h *rpcMethodHandler) handleSessionList(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	states := h.sessions.List()
	summaries := make([]session.Summary, len(states))
	for i, s := range states {
		summaries[i] = s.Summarize()
	}

	if err := conn.Reply(ctx, req.ID, rpc.SessionListResult{Sessions: summaries}); err != nil {
		h.log.Error("failed to send session list response", "error", err)
	}
}

func (h *rpcMethodHandler) handleSessionDelete(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.SessionIDParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	if err := h.sessions.Delete(params.SessionID); err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}
	if h.transcripts != nil {
		if err := h.transcripts.DeleteSession(params.SessionID); err != nil {
			h.log.Error("failed to delete transcript", "session", params.SessionID, "error", err)
		}
	}
	h.log.Info("session deleted", "session", params.SessionID)

	if err := conn.Reply(ctx, req.ID, struct{}{}); err != nil {
		h.log.Error("failed to send session delete response", "error", err)
	}
}

func (h *rpcMethodHandler) handleSessionReset(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.SessionIDParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	state, err := h.sessions.Reset(params.SessionID)
	if err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}
	h.log.Info("session reset", "session", params.SessionID)

	if err := conn.Reply(ctx, req.ID, rpc.SessionResult{Session: state}); err != nil {
		h.log.Error("failed to send session reset response", "error", err)
	}
}

func (h *rpcMethodHandler) handleSessionSubscribe(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.SessionSubscribeParams
	if req.Params != nil {
		if err := unmarshalParams(req, &params); err != nil {
			h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
			return
		}
	}

	id := h.sessionWatcher.Subscribe(h.state.getNotifier(), params.SessionID)
	h.state.trackSubscription(id, h.sessionWatcher)
	h.log.Debug("session subscription added", "watchId", id, "session", params.SessionID)

	if err := conn.Reply(ctx, req.ID, rpc.SubscribeResult{ID: id}); err != nil {
		h.log.Error("failed to send session subscribe response", "error", err)
	}
}
