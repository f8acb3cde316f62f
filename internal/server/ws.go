package server

import (
	"encoding/json"
	"log"
	"sync"

	"golang.org/x/net/websocket"
)

// wsPeer serializes writes to one websocket subscriber.
type wsPeer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func (p *wsPeer) write(event rollResponse) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(event)
}

// feedHub tracks websocket subscribers for the live roll feed.
type feedHub struct {
	mu          sync.Mutex
	subscribers map[*wsPeer]struct{}
}

func newFeedHub() *feedHub {
	return &feedHub{subscribers: make(map[*wsPeer]struct{})}
}

func (h *feedHub) subscribe(peer *wsPeer) {
	h.mu.Lock()
	h.subscribers[peer] = struct{}{}
	h.mu.Unlock()
}

func (h *feedHub) unsubscribe(peer *wsPeer) {
	h.mu.Lock()
	delete(h.subscribers, peer)
	h.mu.Unlock()
}

// broadcast sends the event to every subscriber. Peers that fail to
// accept the write are dropped from the feed.
func (h *feedHub) broadcast(event rollResponse) {
	h.mu.Lock()
	peers := make([]*wsPeer, 0, len(h.subscribers))
	for peer := range h.subscribers {
		peers = append(peers, peer)
	}
	h.mu.Unlock()

	for _, peer := range peers {
		if err := peer.write(event); err != nil {
			log.Printf("drop roll feed subscriber: %v", err)
			h.unsubscribe(peer)
		}
	}
}

// handleWS subscribes the connection to the roll feed and blocks until
// the client disconnects. The feed is write-only; inbound frames are
// discarded.
func (s *Server) handleWS(conn *websocket.Conn) {
	peer := &wsPeer{encoder: json.NewEncoder(conn)}
	s.hub.subscribe(peer)
	defer s.hub.unsubscribe(peer)

	buf := make([]byte, 512)
	for {
		if _, err := conn.Read(buf); err != nil {
			return
		}
	}
}
