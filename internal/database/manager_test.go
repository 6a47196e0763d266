package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakeClient struct {
	mu           sync.Mutex
	pingErr      error
	pings        int
	disconnected bool
}

func (f *fakeClient) Ping(context.Context, *readpref.ReadPref) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeClient) Disconnect(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnected = true
	return nil
}

func (f *fakeClient) Database(string, ...*options.DatabaseOptions) *mongo.Database {
	return nil
}

func (f *fakeClient) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

type fakeDialer struct {
	mu      sync.Mutex
	dials   int
	err     error
	clients []*fakeClient
	monitor *event.ServerMonitor
}

func (d *fakeDialer) dial(_ context.Context, opts *options.ClientOptions) (Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	d.monitor = opts.ServerMonitor
	if d.err != nil {
		return nil, d.err
	}
	c := &fakeClient{}
	d.clients = append(d.clients, c)
	return c, nil
}

func TestManagerConnectsLazilyOnce(t *testing.T) {
	d := &fakeDialer{}
	m := NewManager("mongodb://test", "menu", WithDialer(d.dial))
	assert.Equal(t, StateDisconnected, m.State())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Database(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, d.dials)
	assert.Equal(t, StateConnected, m.State())
}

func TestManagerRetriesAfterDialFailure(t *testing.T) {
	d := &fakeDialer{err: errors.New("no route")}
	m := NewManager("mongodb://test", "menu", WithDialer(d.dial))

	_, err := m.Database(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateErrored, m.State())

	d.err = nil
	_, err = m.Database(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateConnected, m.State())
	assert.Equal(t, 2, d.dials)
}

func TestManagerHeartbeatFailureThenRecovery(t *testing.T) {
	d := &fakeDialer{}
	m := NewManager("mongodb://test", "menu", WithDialer(d.dial))
	_, err := m.Database(context.Background())
	require.NoError(t, err)

	d.monitor.ServerHeartbeatFailed(&event.ServerHeartbeatFailedEvent{Failure: errors.New("timeout")})
	assert.Equal(t, StateErrored, m.State())

	// The existing client answers again, so no new dial.
	_, err = m.Database(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateConnected, m.State())
	assert.Equal(t, 1, d.dials)
}

func TestManagerReconnectsWhenClientStaysDown(t *testing.T) {
	d := &fakeDialer{}
	m := NewManager("mongodb://test", "menu", WithDialer(d.dial))
	_, err := m.Database(context.Background())
	require.NoError(t, err)

	first := d.clients[0]
	first.setPingErr(errors.New("connection reset"))
	d.monitor.ServerClosed(&event.ServerClosedEvent{})

	_, err = m.Database(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, d.dials)
	assert.True(t, first.disconnected)
	assert.Equal(t, StateConnected, m.State())
}

func TestManagerPingMarksErrored(t *testing.T) {
	d := &fakeDialer{}
	m := NewManager("mongodb://test", "menu", WithDialer(d.dial))
	require.NoError(t, m.Ping(context.Background()))

	d.clients[0].setPingErr(errors.New("down"))
	assert.Error(t, m.Ping(context.Background()))
	assert.Equal(t, StateErrored, m.State())
}

func TestManagerClose(t *testing.T) {
	d := &fakeDialer{}
	m := NewManager("mongodb://test", "menu", WithDialer(d.dial))
	_, err := m.Database(context.Background())
	require.NoError(t, err)

	require.NoError(t, m.Close(context.Background()))
	assert.Equal(t, StateDisconnected, m.State())
	assert.True(t, d.clients[0].disconnected)

	_, err = m.Database(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}
