package telemetry

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultEvent is the event name reports are emitted under.
const DefaultEvent = "frame"

// ErrNotConnected is returned by Publish once the socket has dropped.
var ErrNotConnected = errors.New("socket.io publisher is not connected")

// SocketIOOptions configures a SocketIOPublisher.
type SocketIOOptions struct {
	URL                string
	Namespace          string
	Event              string
	ConnectTimeout     time.Duration
	InsecureSkipVerify bool
}

// SocketIOPublisher emits every report as one socket.io event.
type SocketIOPublisher struct {
	io    *socket.Socket
	event string
}

var _ Publisher = (*SocketIOPublisher)(nil)

// parseEndpoint splits a collector URL into the manager base URL and the
// engine.io path.
func parseEndpoint(raw string) (base, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return "", "", fmt.Errorf("unsupported URL scheme '%s'", u.Scheme)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("URL '%s' has no host", raw)
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), u.Path, nil
}

// DialSocketIO connects to the collector and waits for the connection to be
// acknowledged.
func DialSocketIO(ctx context.Context, o SocketIOOptions) (*SocketIOPublisher, error) {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", o.URL)

	baseURL, path, err := parseEndpoint(o.URL)
	if err != nil {
		return nil, err
	}
	if o.Namespace == "" {
		o.Namespace = "/"
	}
	if o.Event == "" {
		o.Event = DefaultEvent
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 15 * time.Second
	}

	opts := socket.DefaultOptions()
	if path != "" {
		opts.SetPath(path)
	}
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(o.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to telemetry collector.", "sid", io.Id())
		notify(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", errs[0])
			}
		}
		notify(connectChan, err)
	})

	logger.Debug("Connecting to telemetry collector.")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketIOPublisher{io: io, event: o.Event}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(o.ConnectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", o.ConnectTimeout)
	}
}

// notify delivers the first connection outcome; later ones are dropped.
func notify(ch chan error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func (p *SocketIOPublisher) Publish(ctx context.Context, r Report) error {
	if !p.io.Connected() {
		return ErrNotConnected
	}
	ctxlog.FromContext(ctx).Debug("Emitting frame report.", "event", p.event, "frame", r.Stats.Frame)
	p.io.Emit(p.event, r)
	return nil
}

func (p *SocketIOPublisher) Close() error {
	p.io.Disconnect()
	return nil
}
