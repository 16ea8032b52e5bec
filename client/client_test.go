package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct {
	Name string `json:"name"`
}

func newServer(t *testing.T, hits *int64, name func() string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/things", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt64(hits, 1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"name":"` + name() + `"}}`))
		case http.MethodPost:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"success":true,"message":"created","data":{"name":"new"}}`))
		}
	})
	mux.HandleFunc("/api/conflict", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"already exists","error_code":"CONFLICT"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCacheKeyCanonicalizesQuery(t *testing.T) {
	a := CacheKey("/api/things", url.Values{"b": {"2"}, "a": {"1"}})
	b := CacheKey("/api/things", url.Values{"a": {"1"}, "b": {"2"}})
	assert.Equal(t, a, b)

	assert.Equal(t, "/api/things", CacheKey("/api/things", nil))
	assert.NotEqual(t, a, CacheKey("/api/things", url.Values{"a": {"1"}}))
}

func TestGetServesFreshFromCache(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits, func() string { return "v1" })

	cl, err := New(srv.URL, time.Minute)
	require.NoError(t, err)

	var got thing
	require.NoError(t, cl.Get(context.Background(), "/api/things", nil, &got))
	require.NoError(t, cl.Get(context.Background(), "/api/things", nil, &got))

	assert.Equal(t, "v1", got.Name)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits), "a fresh entry must not refetch")
}

func TestGetStaleServesOldValueAndRevalidates(t *testing.T) {
	var hits int64
	version := atomic.Value{}
	version.Store("v1")
	srv := newServer(t, &hits, func() string { return version.Load().(string) })

	// ttl 0: every entry is stale the moment it lands
	cl, err := New(srv.URL, 0)
	require.NoError(t, err)

	var got thing
	require.NoError(t, cl.Get(context.Background(), "/api/things", nil, &got))
	require.Equal(t, "v1", got.Name)

	version.Store("v2")

	// stale read: the old value comes back immediately
	require.NoError(t, cl.Get(context.Background(), "/api/things", nil, &got))
	assert.Equal(t, "v1", got.Name)

	// the background refresh lands eventually
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&hits) >= 2
	}, 3*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		var fresh thing
		if err := cl.Get(context.Background(), "/api/things", nil, &fresh); err != nil {
			return false
		}
		return fresh.Name == "v2"
	}, 3*time.Second, 10*time.Millisecond)
}

func TestMutationInvalidatesAfterAck(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits, func() string { return "v1" })

	cl, err := New(srv.URL, time.Minute)
	require.NoError(t, err)

	var got thing
	require.NoError(t, cl.Get(context.Background(), "/api/things", nil, &got))
	require.Equal(t, 1, cl.Cache().Len())

	require.NoError(t, cl.Post(context.Background(), "/api/things", thing{Name: "new"}, nil, "/api/things"))
	assert.Equal(t, 0, cl.Cache().Len(), "an acknowledged mutation drops the affected keys")

	require.NoError(t, cl.Get(context.Background(), "/api/things", nil, &got))
	assert.EqualValues(t, 2, atomic.LoadInt64(&hits), "the next read refetches")
}

func TestFailedMutationLeavesCacheIntact(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits, func() string { return "v1" })

	cl, err := New(srv.URL, time.Minute)
	require.NoError(t, err)

	var got thing
	require.NoError(t, cl.Get(context.Background(), "/api/things", nil, &got))
	require.Equal(t, 1, cl.Cache().Len())

	err = cl.Post(context.Background(), "/api/conflict", thing{Name: "dup"}, nil, "/api/things")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindAPI, apiErr.Kind)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "CONFLICT", apiErr.ErrorCode)
	assert.Equal(t, "already exists", apiErr.Message)

	assert.Equal(t, 1, cl.Cache().Len(), "a rejected mutation must not invalidate")
}

func TestTransportErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	cl, err := New(srv.URL, time.Minute)
	require.NoError(t, err)

	var got thing
	err = cl.Get(context.Background(), "/api/things", nil, &got)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Error(t, apiErr.Unwrap())
}

func TestInvalidatePrefix(t *testing.T) {
	c := NewCache(time.Minute)
	c.set("/api/things", []byte("a"))
	c.set("/api/things?page=2", []byte("b"))
	c.set("/api/users", []byte("c"))

	c.InvalidatePrefix("/api/things")

	assert.Equal(t, 1, c.Len())
	_, _, ok := c.get("/api/users")
	assert.True(t, ok)
}
