// Package ws implements the interactive WebSocket sessions of the launchboard
// server.
//
// Each connection is one independent session. It starts from the dashboard
// defaults (all sites, observed payload range) and keeps its own inputs; sessions
// share only the read-only dataset.
//
// New(controller, opts...) creates a Hub.
// Hub.Run(ctx) blocks until ctx is cancelled, then closes all active sessions.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket, sends both views
// immediately, then answers every client message with the views it affected.
//
// Client messages (either field may be omitted):
//
//	{"site": "KSC LC-39A", "payload": [2000, 8000]}
//
// Server messages:
//
//	{"event": "views", "site": "...", "payload": [low, high],
//	 "summary": {...}, "correlation": {...}}
//	{"event": "error", "error": "..."}
//
// A site change carries both views, a payload change only "correlation". A
// message that changes nothing gets no reply.
//
// WebSocket endpoint is mounted at /ws/session by the server.
package ws
