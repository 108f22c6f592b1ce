package config

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
)

type WSConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size"`
	WriteBufferSize int `yaml:"write_buffer_size"`
}

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket builds an upgrader accepting the given origins. An empty
// list accepts every origin.
func NewWebSocket(cfg WSConfig, allowedOrigins []string) *WebSocket {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}

	return &WebSocket{
		Upgrader: upgrader,
	}
}
