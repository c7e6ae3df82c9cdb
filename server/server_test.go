package server

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/hagstofa/toknun/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsConfiguredAddrAndHandler(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := New(config.ServerConfig{Host: "127.0.0.1", Port: 9191}, handler, nil)
	require.NotNil(t, srv)
	assert.Equal(t, "127.0.0.1:9191", srv.httpServer.Addr)
	assert.Equal(t, reflect.ValueOf(handler).Pointer(), reflect.ValueOf(srv.httpServer.Handler).Pointer())
}

func TestShutdownDrainsWithoutAListenAndServeCall(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	srv := New(config.ServerConfig{Host: "localhost", Port: 0}, handler, nil)
	assert.NoError(t, srv.Shutdown(context.Background()))
}
