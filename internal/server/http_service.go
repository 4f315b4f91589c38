package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// shutdownTimeout bounds how long Stop waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// HTTPService runs an http.Server as a lifecycle Service.
type HTTPService struct {
	srv    *http.Server
	logger *zap.Logger

	mu   sync.Mutex
	addr string
}

// NewHTTPService creates an HTTPService serving handler on addr.
//
// Precondition: handler and logger must be non-nil.
func NewHTTPService(addr string, handler http.Handler, logger *zap.Logger) *HTTPService {
	return &HTTPService{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start listens and serves until Stop is called.
//
// Postcondition: Returns nil after a graceful Stop.
func (h *HTTPService) Start() error {
	ln, err := net.Listen("tcp", h.srv.Addr)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.addr = ln.Addr().String()
	h.mu.Unlock()

	h.logger.Info("http listening", zap.String("addr", ln.Addr().String()))
	if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting up to shutdownTimeout for requests.
func (h *HTTPService) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		h.logger.Warn("http shutdown", zap.Error(err))
	}
}

// Addr returns the bound address once Start is listening, or "".
func (h *HTTPService) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addr
}
