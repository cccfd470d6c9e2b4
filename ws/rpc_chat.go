package ws

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/marbleseoul/server/logger"
	"github.com/marbleseoul/server/rpc"
)

func (h *rpcMethodHandler) handleChatMessage(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.ChatMessageParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	h.log.Debug("chat message received",
		"session", params.SessionID, "content", logger.Truncate(params.Content, 80))

	state, err := h.chatService.HandleMessage(ctx, params.SessionID, params.Content)
	if err != nil {
		h.replyStoreError(ctx, conn, req.ID, err)
		return
	}

	if err := conn.Reply(ctx, req.ID, rpc.SessionResult{Session: state}); err != nil {
		h.log.Error("failed to send chat message response", "error", err)
	}
}

// handleChatHistory reads the persisted transcript, which survives
// server restarts unlike the in-memory session state.
func (h *rpcMethodHandler) handleChatHistory(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.ChatHistoryParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	if h.transcripts == nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInternalError, "transcript store unavailable")
		return
	}

	messages, err := h.transcripts.Messages(params.SessionID, params.Limit)
	if err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInternalError, err.Error())
		return
	}

	if err := conn.Reply(ctx, req.ID, rpc.ChatHistoryResult{Messages: messages}); err != nil {
		h.log.Error("failed to send chat history response", "error", err)
	}
}
