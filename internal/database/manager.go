// Package database owns the MongoDB connection lifecycle and the indexes
// the menu collections rely on.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"menu-api/internal/logger"
)

type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateErrored:
		return "errored"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

var ErrClosed = errors.New("database: manager closed")

// Client is the subset of *mongo.Client the manager uses.
type Client interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
}

// Dialer opens a client. The default wraps mongo.Connect.
type Dialer func(ctx context.Context, opts *options.ClientOptions) (Client, error)

func mongoDialer(ctx context.Context, opts *options.ClientOptions) (Client, error) {
	return mongo.Connect(ctx, opts)
}

type Option func(*Manager)

func WithDialer(d Dialer) Option {
	return func(m *Manager) { m.dial = d }
}

func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// Manager connects lazily on first use. Concurrent callers share one
// attempt. A failed connect or ping leaves the manager Errored and the next
// call tries again; driver heartbeat failures move a live connection to
// Errored as well.
type Manager struct {
	uri     string
	dbName  string
	dial    Dialer
	timeout time.Duration
	log     *logrus.Logger

	mu     sync.Mutex
	client Client
	closed bool
	state  atomic.Int32
}

func NewManager(uri, dbName string, opts ...Option) *Manager {
	m := &Manager{
		uri:     uri,
		dbName:  dbName,
		dial:    mongoDialer,
		timeout: 10 * time.Second,
		log:     logger.Get("app"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) State() State {
	return State(m.state.Load())
}

// Database returns the configured database, connecting or reconnecting
// first when needed.
func (m *Manager) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := m.connected(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(m.dbName), nil
}

// Ping checks the server round trip and records the outcome.
func (m *Manager) Ping(ctx context.Context) error {
	client, err := m.connected(ctx)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		m.markErrored("ping failed", err)
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

func (m *Manager) connected(ctx context.Context) (Client, error) {
	if m.State() == StateConnected {
		m.mu.Lock()
		client := m.client
		m.mu.Unlock()
		if client != nil {
			return client, nil
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	switch m.State() {
	case StateConnected:
		return m.client, nil
	case StateErrored:
		if m.client != nil {
			pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
			err := m.client.Ping(pingCtx, readpref.Primary())
			cancel()
			if err == nil {
				m.state.Store(int32(StateConnected))
				m.log.Info("mongo connection recovered")
				return m.client, nil
			}
			m.log.WithError(err).Warn("mongo ping failed, reconnecting")
			m.dropClient(ctx)
		}
	}
	return m.connect(ctx)
}

// connect must be called with mu held.
func (m *Manager) connect(ctx context.Context) (Client, error) {
	m.state.Store(int32(StateConnecting))

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(m.uri).
		SetConnectTimeout(m.timeout).
		SetServerMonitor(m.monitor())

	client, err := m.dial(ctx, opts)
	if err != nil {
		m.state.Store(int32(StateErrored))
		m.log.WithError(err).Error("mongo connect failed")
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		m.state.Store(int32(StateErrored))
		m.client = client
		m.log.WithError(err).Error("mongo ping failed")
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	m.client = client
	m.state.Store(int32(StateConnected))
	m.log.WithField("database", m.dbName).Info("connected to mongo")
	return client, nil
}

func (m *Manager) dropClient(ctx context.Context) {
	if m.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if err := m.client.Disconnect(ctx); err != nil {
		m.log.WithError(err).Warn("mongo disconnect failed")
	}
	m.client = nil
}

// monitor reports driver-level failures. The callbacks run on driver
// goroutines and must not take mu.
func (m *Manager) monitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
			m.markErrored("heartbeat failed", e.Failure)
		},
		ServerClosed: func(*event.ServerClosedEvent) {
			m.markErrored("server closed", nil)
		},
	}
}

func (m *Manager) markErrored(reason string, err error) {
	if !m.state.CompareAndSwap(int32(StateConnected), int32(StateErrored)) {
		return
	}
	entry := m.log.WithField("reason", reason)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn("mongo connection marked errored")
}

// Close disconnects and prevents further use.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.state.Store(int32(StateDisconnected))
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	if err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}
