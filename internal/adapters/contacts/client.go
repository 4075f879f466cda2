// internal/adapters/contacts/client.go
package contacts

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_residents/internal/adapters/observability"
	"hotel_residents/internal/domain"
)

// Client talks to a remote contacts service over REST/JSON.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("contacts base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

func (c *Client) CreateContact(ctx context.Context, in domain.Contact) (domain.Contact, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return domain.Contact{}, err
	}
	out := in
	if err := c.do(ctx, "create", http.MethodPost, c.base+"/contacts", body, &out); err != nil {
		return domain.Contact{}, err
	}
	return out, nil
}

func (c *Client) GetContacts(ctx context.Context, residentID int64) ([]domain.Contact, error) {
	var out []domain.Contact
	err := c.do(ctx, "get", http.MethodGet, fmt.Sprintf("%s/contacts/%d", c.base, residentID), nil, &out)
	return out, err
}

func (c *Client) GetAllContacts(ctx context.Context) ([]domain.Contact, error) {
	out := []domain.Contact{}
	err := c.do(ctx, "list", http.MethodGet, c.base+"/contacts", nil, &out)
	return out, err
}

// ---- Internals ----

var (
	ErrUnauthorized = errors.New("contacts: unauthorized")
	ErrForbidden    = errors.New("contacts: forbidden")
)

// do performs one logical call with client-side rate limiting, retries and JSON decode into out.
// GETs retry on 429 and transient 5xx; POSTs retry only on 429 since the server did not act on them.
func (c *Client) do(ctx context.Context, endpoint, method, url string, body []byte, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	idempotent := method == http.MethodGet

	var lastErr error
	for i := 0; i < 4; i++ {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-residents/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("contacts", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if idempotent && i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("contacts", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			b, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return err
			}
			if len(bytes.TrimSpace(b)) == 0 {
				return nil
			}
			return json.Unmarshal(b, out)

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return domain.ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("contacts: remote %d", resp.StatusCode)
			retryable := idempotent || resp.StatusCode == http.StatusTooManyRequests
			if retryable && i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("contacts: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff: 100ms, 200ms, 400ms... plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
