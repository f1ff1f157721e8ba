// Package web exposes the dashboard: a small HTML page, JSON status and
// trade-log endpoints, and an SSE stream of evaluation events.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vadiminshakov/crossbot/internal/domain"
	"github.com/vadiminshakov/crossbot/internal/events"
)

// StatusReader provides a consistent snapshot of portfolio state.
type StatusReader interface {
	Summary() domain.PortfolioSummary
}

type statusResponse struct {
	Capital        string `json:"capital"`
	Position       string `json:"position"`
	LastPrice      string `json:"last_price"`
	PortfolioValue string `json:"portfolio_value"`
	TradeCount     int    `json:"trade_count"`
}

// Server exposes HTTP endpoints serving the HTML UI, JSON state and an
// SSE stream.
type Server struct {
	Addr        string
	Status      StatusReader
	Broadcaster *events.EvaluationBroadcaster
}

// NewServer creates a new web server instance.
func NewServer(addr string, status StatusReader, broadcaster *events.EvaluationBroadcaster) *Server {
	return &Server{Addr: addr, Status: status, Broadcaster: broadcaster}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/trades", s.handleTrades)
	mux.HandleFunc("/evaluations/stream", s.handleEvaluationStream)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.Status == nil {
		http.Error(w, "status reader not available", http.StatusServiceUnavailable)
		return
	}

	sum := s.Status.Summary()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(statusResponse{
		Capital:        sum.Capital.String(),
		Position:       sum.Position.String(),
		LastPrice:      sum.LastPrice.String(),
		PortfolioValue: sum.PortfolioValue.String(),
		TradeCount:     len(sum.Trades),
	})
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	if s.Status == nil {
		http.Error(w, "status reader not available", http.StatusServiceUnavailable)
		return
	}

	trades := s.Status.Summary().Trades
	if trades == nil {
		trades = []domain.Trade{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(trades)
}

func (s *Server) handleEvaluationStream(w http.ResponseWriter, r *http.Request) {
	if s.Broadcaster == nil {
		http.Error(w, "evaluation stream not available", http.StatusServiceUnavailable)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := s.Broadcaster.Subscribe()
	defer s.Broadcaster.Unsubscribe(sub)

	// send a comment heartbeat every 30s so proxies keep the connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case eval, open := <-sub:
			if !open {
				return
			}
			payload, err := json.Marshal(eval)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
