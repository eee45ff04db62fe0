// Package ws streams strip snapshots to browser previews over websockets.
// The stream is one-way; inbound messages are read and discarded.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

const writeWait = 200 * time.Millisecond

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	Length  int    `json:"length"`
	RGB     []byte `json:"rgb"`
}

// Preview is a led.Sink that fans snapshots out to connected clients.
type Preview struct {
	mu        sync.Mutex
	frameID   uint64
	startTime time.Time
	clients   map[*websocket.Conn]bool
	upgrader  websocket.Upgrader
}

func NewPreview() *Preview {
	return &Preview{
		startTime: time.Now(),
		clients:   map[*websocket.Conn]bool{},
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Clients returns the number of connected previews.
func (p *Preview) Clients() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}

func (p *Preview) HandleFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("upgrade preview")
		return
	}
	p.mu.Lock()
	p.clients[conn] = true
	p.mu.Unlock()

	go func() {
		defer p.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (p *Preview) drop(conn *websocket.Conn) {
	p.mu.Lock()
	delete(p.clients, conn)
	p.mu.Unlock()
	conn.Close()
}

func (p *Preview) HandleHealth(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	resp := map[string]any{
		"frame_id": p.frameID,
		"uptime_s": time.Since(p.startTime).Seconds(),
		"clients":  len(p.clients),
	}
	p.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Apply sends snap to every client. Clients that fail to keep up are dropped.
func (p *Preview) Apply(snap strip.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frameID++
	if len(p.clients) == 0 {
		return
	}
	b, err := json.Marshal(frame{
		T:       time.Now().UnixNano(),
		FrameID: p.frameID,
		Length:  snap.Len(),
		RGB:     snap.RGB(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("encode frame")
		return
	}
	for c := range p.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
			delete(p.clients, c)
			c.Close()
		}
	}
}

// Close disconnects every client.
func (p *Preview) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for c := range p.clients {
		c.Close()
		delete(p.clients, c)
	}
	return nil
}
