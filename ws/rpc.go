// Package ws exposes the server over JSON-RPC 2.0 on a WebSocket. Each
// connection authenticates first (when a token is configured), then
// drives sessions, chat, and map state through namespaced methods.
package ws

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/marbleseoul/server/chat"
	"github.com/marbleseoul/server/logger"
	"github.com/marbleseoul/server/market"
	"github.com/marbleseoul/server/rpc"
	"github.com/marbleseoul/server/session"
	"github.com/marbleseoul/server/transcript"
	"github.com/marbleseoul/server/watch"
)

var validate = validator.New()

// RPCHandler handles JSON-RPC 2.0 over WebSocket.
type RPCHandler struct {
	token   string
	version string
	devMode bool

	sessions    *session.Store
	marketStore *market.Store
	chatService *chat.Service
	transcripts *transcript.Store

	sessionWatcher *watch.SessionWatcher
	marketWatcher  *watch.MarketWatcher
}

func NewRPCHandler(
	token, version string,
	devMode bool,
	sessions *session.Store,
	marketStore *market.Store,
	chatService *chat.Service,
	transcripts *transcript.Store,
) *RPCHandler {
	sessionWatcher := watch.NewSessionWatcher(sessions)
	sessionWatcher.Start()

	marketWatcher := watch.NewMarketWatcher(marketStore)
	if err := marketWatcher.Start(); err != nil {
		slog.Warn("market file watching unavailable", "error", err)
	}

	return &RPCHandler{
		token:          token,
		version:        version,
		devMode:        devMode,
		sessions:       sessions,
		marketStore:    marketStore,
		chatService:    chatService,
		transcripts:    transcripts,
		sessionWatcher: sessionWatcher,
		marketWatcher:  marketWatcher,
	}
}

// Stop stops the RPC handler and releases resources.
func (h *RPCHandler) Stop() {
	h.sessionWatcher.Stop()
	h.marketWatcher.Stop()
}

func (h *RPCHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: h.devMode,
	})
	if err != nil {
		slog.Error("failed to accept websocket", "error", err)
		return
	}

	h.handleConnection(r.Context(), conn)
}

func (h *RPCHandler) handleConnection(ctx context.Context, wsConn *websocket.Conn) {
	stream := newWebSocketStream(wsConn)
	connID := uuid.Must(uuid.NewV7()).String()
	h.HandleStream(ctx, stream, connID)
}

func (h *RPCHandler) HandleStream(ctx context.Context, stream jsonrpc2.ObjectStream, connID string) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r, "websocket connection crashed", "connId", connID)
		}
	}()

	log := slog.With("connId", connID)
	log.Info("new connection")

	state := &rpcConnState{
		connID: connID,
		log:    log,
	}

	handler := &rpcMethodHandler{
		RPCHandler: h,
		state:      state,
		log:        log,
		// With no token configured the connection starts authenticated.
		authenticated: h.token == "",
	}

	rpcConn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.AsyncHandler(handler))
	state.setConn(rpcConn)

	<-rpcConn.DisconnectNotify()

	state.cleanup(h)
	log.Info("connection closed")
}

// rpcConnState tracks per-connection state.
type rpcConnState struct {
	mu            sync.Mutex
	connID        string
	conn          *jsonrpc2.Conn
	notifier      *JSONRPCNotifier
	log           *slog.Logger
	subscriptions map[string]watch.Watcher // subID → watcher for cleanup
}

func (s *rpcConnState) setConn(conn *jsonrpc2.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.notifier = NewJSONRPCNotifier(conn)
	s.subscriptions = make(map[string]watch.Watcher)
	s.mu.Unlock()
}

func (s *rpcConnState) getNotifier() watch.Notifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifier
}

func (s *rpcConnState) trackSubscription(id string, watcher watch.Watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions[id] = watcher
}

func (s *rpcConnState) untrackSubscription(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscriptions, id)
}

func (s *rpcConnState) cleanup(*RPCHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, watcher := range s.subscriptions {
		watcher.Unsubscribe(id)
	}
	s.subscriptions = nil
}

type rpcMethodHandler struct {
	*RPCHandler
	state         *rpcConnState
	log           *slog.Logger
	authenticated bool
	authMu        sync.Mutex
}

func (h *rpcMethodHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r, "rpc handler panic", "method", req.Method, "connId", h.state.connID)
		}
	}()

	h.log.Debug("received request", "method", req.Method, "id", req.ID)

	// Auth must be the first request when a token is configured
	if !h.isAuthenticated() {
		if req.Method != "auth" {
			h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidRequest, "first request must be auth")
			conn.Close()
			return
		}
		h.handleAuth(ctx, conn, req)
		return
	}

	switch req.Method {
	case "auth":
		// Idempotent for clients that always send auth first.
		h.handleAuth(ctx, conn, req)
	// session namespace
	case "session.create":
		h.handleSessionCreate(ctx, conn, req)
	case "session.get":
		h.handleSessionGet(ctx, conn, req)
	case "session.list":
		h.handleSessionList(ctx, conn, req)
	case "session.delete":
		h.handleSessionDelete(ctx, conn, req)
	case "session.reset":
		h.handleSessionReset(ctx, conn, req)
	case "session.subscribe":
		h.handleSessionSubscribe(ctx, conn, req)
	case "session.unsubscribe":
		h.handleWatcherUnsubscribe(ctx, conn, req, h.sessionWatcher, "session")
	// chat namespace
	case "chat.message":
		h.handleChatMessage(ctx, conn, req)
	case "chat.history":
		h.handleChatHistory(ctx, conn, req)
	// view namespace
	case "view.set_stage":
		h.handleViewSetStage(ctx, conn, req)
	case "district.select":
		h.handleDistrictSelect(ctx, conn, req)
	case "quintile.select":
		h.handleQuintileSelect(ctx, conn, req)
	case "comparison.set_mode":
		h.handleComparisonSetMode(ctx, conn, req)
	case "comparison.clear":
		h.handleComparisonClear(ctx, conn, req)
	case "comparison.data":
		h.handleComparisonData(ctx, conn, req)
	// map namespace
	case "map.state":
		h.handleMapState(ctx, conn, req)
	// market namespace
	case "market.snapshot":
		h.handleMarketSnapshot(ctx, conn, req)
	case "district.info":
		h.handleDistrictInfo(ctx, conn, req)
	case "market.subscribe":
		h.handleMarketSubscribe(ctx, conn, req)
	case "market.unsubscribe":
		h.handleWatcherUnsubscribe(ctx, conn, req, h.marketWatcher, "market")
	default:
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeMethodNotFound, "method not found: "+req.Method)
	}
}

func (h *rpcMethodHandler) isAuthenticated() bool {
	h.authMu.Lock()
	defer h.authMu.Unlock()
	return h.authenticated
}

func (h *rpcMethodHandler) setAuthenticated() {
	h.authMu.Lock()
	h.authenticated = true
	h.authMu.Unlock()
}

func (h *rpcMethodHandler) handleAuth(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if h.token != "" {
		var params rpc.AuthParams
		if err := unmarshalParams(req, &params); err != nil {
			h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
			conn.Close()
			return
		}
		if subtle.ConstantTimeCompare([]byte(params.Token), []byte(h.token)) != 1 {
			h.log.Warn("invalid auth token")
			h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidRequest, "invalid token")
			conn.Close()
			return
		}
	}

	h.setAuthenticated()
	h.log.Info("authenticated")

	result := rpc.AuthResult{
		Version:    h.version,
		Title:      "마블서울",
		LLMEnabled: h.chatService.LLMEnabled(),
	}
	if snap := h.marketStore.Snapshot(); snap != nil {
		result.Month = snap.Month
	}
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send auth response", "error", err)
	}
}

func (h *rpcMethodHandler) replyError(ctx context.Context, conn *jsonrpc2.Conn, id jsonrpc2.ID, code int64, message string) {
	err := &jsonrpc2.Error{
		Code:    code,
		Message: message,
	}
	if replyErr := conn.ReplyWithError(ctx, id, err); replyErr != nil {
		h.log.Error("failed to send error response", "error", replyErr)
	}
}

// replyStoreError maps store errors to JSON-RPC codes.
func (h *rpcMethodHandler) replyStoreError(ctx context.Context, conn *jsonrpc2.Conn, id jsonrpc2.ID, err error) {
	var notFound session.ErrNotFound
	if errors.As(err, &notFound) {
		h.replyError(ctx, conn, id, jsonrpc2.CodeInvalidParams, err.Error())
		return
	}
	h.replyError(ctx, conn, id, jsonrpc2.CodeInternalError, err.Error())
}

func unmarshalParams(req *jsonrpc2.Request, v interface{}) error {
	if req.Params == nil {
		return errors.New("params required")
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return err
	}
	return validate.Struct(v)
}

func (h *rpcMethodHandler) handleWatcherUnsubscribe(
	ctx context.Context,
	conn *jsonrpc2.Conn,
	req *jsonrpc2.Request,
	watcher watch.Watcher,
	logName string,
) {
	var params rpc.UnsubscribeParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	watcher.Unsubscribe(params.ID)
	h.state.untrackSubscription(params.ID)
	h.log.Debug("unsubscribed", "watcher", logName, "watchId", params.ID)

	if err := conn.Reply(ctx, req.ID, struct{}{}); err != nil {
		h.log.Error("failed to send "+logName+" unsubscribe response", "error", err)
	}
}

// webSocketStream adapts coder/websocket to jsonrpc2.ObjectStream.
type webSocketStream struct {
	conn *websocket.Conn
	mu   sync.Mutex // protects writes
}

func newWebSocketStream(conn *websocket.Conn) *webSocketStream {
	return &webSocketStream{conn: conn}
}

func (s *webSocketStream) ReadObject(v interface{}) error {
	_, data, err := s.conn.Read(context.Background())
	if err != nil {
		// Treat normal close frames as EOF so jsonrpc2 shuts down gracefully
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			return io.EOF
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *webSocketStream) WriteObject(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Write(context.Background(), websocket.MessageText, data)
}

func (s *webSocketStream) Close() error {
	return s.conn.Close(websocket.StatusNormalClosure, "")
}

// Ensure webSocketStream implements ObjectStream
var _ jsonrpc2.ObjectStream = (*webSocketStream)(nil)
