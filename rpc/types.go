// Package rpc defines the JSON-RPC 2.0 request and response payloads
// exchanged with the browser panel.
package rpc

import (
	"github.com/marbleseoul/server/geo"
	"github.com/marbleseoul/server/market"
	"github.com/marbleseoul/server/session"
)

// AuthParams is the first request on every connection.
type AuthParams struct {
	Token string `json:"token"`
}

type AuthResult struct {
	Version    string `json:"version"`
	Title      string `json:"title"`
	LLMEnabled bool   `json:"llm_enabled"`
	// Month is the latest data month (YYYYMM), 0 when no data is loaded.
	Month int `json:"month"`
}

// --- session namespace ---

type SessionIDParams struct {
	SessionID string `json:"session_id" validate:"required"`
}

type SessionResult struct {
	Session *session.State `json:"session"`
}

type SessionListResult struct {
	Sessions []session.Summary `json:"sessions"`
}

type SessionSubscribeParams struct {
	// SessionID scopes the subscription; empty receives all sessions.
	SessionID string `json:"session_id,omitempty"`
}

type SubscribeResult struct {
	ID string `json:"id"`
}

type UnsubscribeParams struct {
	ID string `json:"id" validate:"required"`
}

// --- chat namespace ---

type ChatMessageParams struct {
	SessionID string `json:"session_id" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

type ChatHistoryParams struct {
	SessionID string `json:"session_id" validate:"required"`
	Limit     int    `json:"limit,omitempty" validate:"gte=0"`
}

type ChatHistoryResult struct {
	Messages []session.Message `json:"messages"`
}

// --- view namespace ---

type ViewSetStageParams struct {
	SessionID string            `json:"session_id" validate:"required"`
	Stage     session.ViewStage `json:"stage" validate:"required"`
}

type DistrictSelectParams struct {
	SessionID string `json:"session_id" validate:"required"`
	District  string `json:"district" validate:"required"`
}

type QuintileSelectParams struct {
	SessionID string `json:"session_id" validate:"required"`
	Quintile  int    `json:"quintile" validate:"gte=0,lte=5"`
}

type ComparisonSetModeParams struct {
	SessionID string                 `json:"session_id" validate:"required"`
	Mode      session.ComparisonMode `json:"mode" validate:"required,oneof=adjacent similar_price"`
}

type ComparisonDataResult struct {
	Mode session.ComparisonMode `json:"mode"`
	Rows []market.ComparisonRow `json:"rows"`
}

// --- map namespace ---

type MapStateParams struct {
	SessionID string `json:"session_id" validate:"required"`
}

// MapDistrict is one district feature with its current draw style.
type MapDistrict struct {
	Name   string    `json:"name"`
	Center geo.Coord `json:"center"`
	Style  geo.Style `json:"style"`
}

type MapStateResult struct {
	View      geo.View      `json:"view"`
	Districts []MapDistrict `json:"districts"`
}

// --- market namespace ---

type MarketSnapshotResult struct {
	Month     int                     `json:"month"`
	Ranking   []market.RankedDistrict `json:"ranking"`
	Quintiles []market.Quintile       `json:"quintiles"`
}

type DistrictInfoParams struct {
	District string `json:"district" validate:"required"`
}

type DistrictInfoResult struct {
	Info market.DistrictInfo   `json:"info"`
	Rank market.RankedDistrict `json:"rank"`
}
