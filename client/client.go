package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// envelope mirrors the server's response shape.
type envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Data      json.RawMessage     `json:"data,omitempty"`
}

// Client is a caching API client. Reads go through an explicit Cache with
// stale-while-revalidate semantics; writes invalidate the affected read
// keys only after the server has acknowledged the mutation.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
}

func New(baseURL string, cacheTTL time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
		cache: NewCache(cacheTTL),
	}, nil
}

func (c *Client) Cache() *Cache {
	return c.cache
}

// Get resolves a read through the cache. A fresh entry is returned without
// touching the network. A stale entry is returned immediately while a
// background refresh replaces it. A miss fetches synchronously.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	key := CacheKey(path, query)

	body, fresh, ok := c.cache.get(key)
	if ok {
		if !fresh {
			go func() {
				bgCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				if b, err := c.fetch(bgCtx, path, query); err == nil {
					c.cache.set(key, b)
				}
			}()
		}
		return decodeData(body, out)
	}

	b, err := c.fetch(ctx, path, query)
	if err != nil {
		return err
	}
	c.cache.set(key, b)
	return decodeData(b, out)
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, transportErr(err)
	}
	return c.do(req)
}

// Post sends a mutation and, on success, invalidates every cache key
// starting with one of the given prefixes. Invalidation happens strictly
// after the 2xx acknowledgement, never optimistically.
func (c *Client) Post(ctx context.Context, path string, body, out any, invalidate ...string) error {
	return c.mutate(ctx, http.MethodPost, path, body, out, invalidate)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, invalidate ...string) error {
	return c.mutate(ctx, http.MethodPatch, path, body, out, invalidate)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, invalidate ...string) error {
	return c.mutate(ctx, http.MethodPut, path, body, out, invalidate)
}

func (c *Client) Delete(ctx context.Context, path string, out any, invalidate ...string) error {
	return c.mutate(ctx, http.MethodDelete, path, nil, out, invalidate)
}

func (c *Client) mutate(ctx context.Context, method, path string, body, out any, invalidate []string) error {
	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			return transportErr(err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return transportErr(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	respBody, err := c.do(req)
	if err != nil {
		return err
	}

	for _, prefix := range invalidate {
		c.cache.InvalidatePrefix(prefix)
	}

	if out == nil {
		return nil
	}
	return decodeData(respBody, out)
}

// do runs the request and splits failures into transport and api errors.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportErr(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		apiErr := &APIError{Kind: KindAPI, Status: resp.StatusCode}
		if err := sonic.Unmarshal(raw, &env); err == nil {
			apiErr.ErrorCode = env.ErrorCode
			apiErr.Message = env.Message
			apiErr.Errors = env.Errors
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}
	return raw, nil
}

func decodeData(raw []byte, out any) error {
	if out == nil {
		return nil
	}
	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return transportErr(err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(env.Data, out); err != nil {
		return transportErr(err)
	}
	return nil
}
