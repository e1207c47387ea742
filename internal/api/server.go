package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"phoneticwalk/history"
	"phoneticwalk/internal/config"
	"phoneticwalk/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient is a single /ws subscriber; sends are serialized behind a
// mutex since gorilla/websocket connections aren't safe for concurrent
// writes from multiple goroutines.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Server is the HTTP + gRPC + /ws front door onto AlignService.
type Server struct {
	Config   *config.Config
	AlignSvc *service.AlignService

	mu      sync.Mutex
	clients map[*wsClient]bool
}

// NewServer wires the align service's completion callback to broadcast
// over every connected /ws client.
func NewServer(cfg *config.Config, alignSvc *service.AlignService) *Server {
	s := &Server{
		Config:   cfg,
		AlignSvc: alignSvc,
		clients:  make(map[*wsClient]bool),
	}
	alignSvc.OnComplete = s.broadcastCompletion
	return s
}

// Start registers the HTTP routes, launches the gRPC listener, and
// blocks serving HTTP.
func (s *Server) Start() {
	go s.startGRPCServer()

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/api/align", s.handleAlign)
	http.HandleFunc("/api/history", s.handleHistoryList)
	http.HandleFunc("/api/history/", s.handleHistoryGet)

	log.Printf("Backend listening on HTTP :%s and gRPC %s", s.Config.Port, s.Config.GRPCAddr)
	if err := http.ListenAndServe(":"+s.Config.Port, nil); err != nil {
		log.Fatal("ListenAndServe:", err)
	}
}

func (s *Server) broadcastCompletion(e *history.Entry) {
	msg := Message{
		Type:      "align_complete",
		JobID:     e.ID,
		Result:    &e.Result,
		Error:     e.Err,
		Submitted: e.SubmittedAt.UnixMilli(),
		Finished:  e.FinishedAt.UnixMilli(),
	}
	s.broadcast(msg)
}

func (s *Server) addClient(c *wsClient) {
	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()
}

func (s *Server) removeClient(c *wsClient) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	_ = c.conn.Close()
}

func (s *Server) broadcast(msg Message) {
	s.mu.Lock()
	targets := make([]*wsClient, 0, len(s.clients))
	for c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	for _, c := range targets {
		if err := c.send(msg); err != nil {
			log.Printf("ws send error: %v", err)
			s.removeClient(c)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("ws upgrade:", err)
		return
	}
	client := &wsClient{conn: conn}
	s.addClient(client)
	defer s.removeClient(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req alignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	entry := s.AlignSvc.Submit(req.Track1, req.Track2, req.Config)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(alignResponse{
		JobID:  entry.ID,
		Result: entry.Result,
		Error:  entry.Err,
	})
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.AlignSvc.History.List())
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/history/")
	if id == "" {
		http.Error(w, "missing job id", http.StatusBadRequest)
		return
	}
	entry, ok := s.AlignSvc.History.Get(id)
	if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entry)
}
