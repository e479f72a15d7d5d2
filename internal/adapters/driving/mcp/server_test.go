package mcp

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing contact reader returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Profile: &mockProfileController{}}, "1.0.0")
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingContactReader)
	})

	t.Run("missing profile controller returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Contacts: &mockContactReader{}}, "1.0.0")
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingProfileController)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Contacts: &mockContactReader{},
			Profile:  &mockProfileController{},
		}, "")
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingContactReader)
	assert.NoError(t, (&Ports{
		Contacts:   &mockContactReader{},
		Profile:    &mockProfileController{},
		SelectFile: func(string) {},
	}).Validate())
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(&Ports{
		Contacts: &mockContactReader{},
		Profile:  &mockProfileController{},
	}, "test")
	require.NoError(t, err)
	return server
}

func TestServer_Handler(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newTestServer(t).Serve(ctx, l) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServer_RunHTTPBadAddress(t *testing.T) {
	err := newTestServer(t).RunHTTP(context.Background(), "not-an-address")

	assert.ErrorContains(t, err, "listening on not-an-address")
}
