package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studiowebux/usercrud/internal/types"
)

// maxLogs bounds the in-memory request log
const maxLogs = 1000

// Server represents the mock directory server
type Server struct {
	config     *Config
	httpServer *http.Server
	listener   net.Listener
	logger     *zap.Logger
	logs       []RequestLog
	logsMutex  sync.RWMutex
	notifyCh   chan struct{} // Channel to notify when new log arrives
	done       chan struct{}
}

// NewServer creates a new mock server
func NewServer(config *Config, logger *zap.Logger) *Server {
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Path == "" {
		config.Path = "/users"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		config:   config,
		logger:   logger.Named("mock"),
		logs:     make([]RequestLog, 0),
		notifyCh: make(chan struct{}, 100), // Buffered channel for notifications
	}
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("mock server error", zap.Error(err))
		}
	}()

	s.logger.Info("mock directory listening",
		zap.String("address", s.GetAddress()),
		zap.Int("users", len(s.config.Users)))

	return nil
}

// Stop stops the mock server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	<-s.done
	s.httpServer = nil
	return err
}

// handleRequest serves the users payload on the configured path
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := s.serve(w, r)

	if s.config.Logging {
		s.logRequest(RequestLog{
			Timestamp: start,
			Method:    r.Method,
			Path:      r.URL.Path,
			Status:    status,
			Duration:  time.Since(start),
		})
	}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) int {
	if r.URL.Path != s.config.Path {
		http.Error(w, fmt.Sprintf("Mock server: No route configured for %s %s", r.Method, r.URL.Path), http.StatusNotFound)
		return http.StatusNotFound
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Mock server: the directory is read-only", http.StatusMethodNotAllowed)
		return http.StatusMethodNotAllowed
	}

	if s.config.Delay > 0 {
		select {
		case <-time.After(time.Duration(s.config.Delay) * time.Millisecond):
		case <-r.Context().Done():
			return http.StatusRequestTimeout
		}
	}

	status := s.config.Status
	if status == 0 {
		status = http.StatusOK
	}

	payload := usersPayload{
		Users: s.config.Users,
		Total: len(s.config.Users),
		Limit: len(s.config.Users),
	}
	if payload.Users == nil {
		payload.Users = []types.RemoteUser{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, fmt.Sprintf("Mock server: failed to encode users: %v", err), http.StatusInternalServerError)
		return http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return status
}

// logRequest adds a request to the log
func (s *Server) logRequest(entry RequestLog) {
	s.logger.Debug("request",
		zap.String("method", entry.Method),
		zap.String("path", entry.Path),
		zap.Int("status", entry.Status),
		zap.Duration("duration", entry.Duration))

	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, entry)

	// Keep only the most recent entries
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}

	// Notify listeners (non-blocking)
	select {
	case s.notifyCh <- struct{}{}:
	default:
		// Channel full, skip notification
	}
}

// NotifyChannel returns the notification channel
func (s *Server) NotifyChannel() <-chan struct{} {
	return s.notifyCh
}

// GetLogs returns all logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	// Return a copy
	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// ClearLogs clears the request log and returns the entries it held
func (s *Server) ClearLogs() []RequestLog {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	logs := s.logs
	s.logs = make([]RequestLog, 0)
	return logs
}

// GetAddress returns the server base address
func (s *Server) GetAddress() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return "http://" + net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// UsersURL returns the full URL of the users endpoint
func (s *Server) UsersURL() string {
	return s.GetAddress() + s.config.Path
}
