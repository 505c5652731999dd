// Package bridge exposes a session to a separate UI process as JSON commands
// over a websocket.
package bridge

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"browsed/internal/command"
	"browsed/internal/errors"
	"browsed/internal/log"

	"github.com/gorilla/websocket"
)

// Path is where the websocket endpoint is mounted by NewMux.
const Path = "/ws"

// MaxMessageSize bounds a single client message. Larger messages close the
// connection.
const MaxMessageSize = 1 << 20

// Handler upgrades connections and feeds their messages to a dispatcher.
// Every connection drives the same session.
type Handler struct {
	dispatcher *command.Dispatcher
	upgrader   websocket.Upgrader
	logger     *log.Logger
}

// NewHandler creates a Handler. With no allowed origins only same-host
// browser clients are accepted; "*" accepts any origin.
func NewHandler(d *command.Dispatcher, allowedOrigins []string, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{
		dispatcher: d,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = originChecker(allowedOrigins)
	}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		if _, ok := set["*"]; ok {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// ServeHTTP runs one connection until the client goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.With(log.F("remote", r.RemoteAddr)).Warnf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(MaxMessageSize)

	logger := h.logger.With(log.F("remote", r.RemoteAddr))
	logger.Debug("client connected")

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			switch {
			case errors.Is(err, websocket.ErrReadLimit):
				logger.With(log.F("limit", MaxMessageSize)).Warn("client message too large")
			case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure):
				logger.WithError(err).Warn("connection closed unexpectedly")
			}
			return
		}

		var resp command.Response
		var req command.Request
		if err := json.Unmarshal(message, &req); err != nil {
			resp = command.Response{Error: "malformed request: " + err.Error(), ErrorKind: errors.Unknown.String()}
		} else if resp, err = h.dispatcher.Dispatch(r.Context(), req); err != nil {
			resp = command.Response{ID: req.ID, Command: req.Command, Error: err.Error(), ErrorKind: errors.KindOf(err).String()}
		}

		if err := conn.WriteJSON(resp); err != nil {
			logger.WithError(err).Warn("failed to write response")
			return
		}
	}
}

// NewMux mounts h at Path.
func NewMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	return mux
}

// Serve listens on addr until ctx ends, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	return ServeListener(ctx, ln, handler, logger)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	server := &http.Server{
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.With(log.F("addr", ln.Addr().String())).Info("bridge listening")
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down bridge")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "bridge shutdown")
	}
	return nil
}
