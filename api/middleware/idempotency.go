package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/rentalhub-backend/api/responses"
	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/rentalhub-backend/pkg/redis"
)

const (
	idempotencyHeader      = "Idempotency-Key"
	idempotentReplayHeader = "Idempotent-Replayed"
	defaultIdempotencyTTL  = 24 * time.Hour
	maxIdempotencyKeyLen   = 255

	// pendingTTL bounds how long a crashed request keeps its key reserved.
	pendingTTL = time.Minute
)

const (
	recordPending = "pending"
	recordDone    = "done"
)

// replayRecord is what redis holds per key: a reservation while the first
// request runs, then the response it produced.
type replayRecord struct {
	State       string `json:"state"`
	Hash        string `json:"hash"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// Booking and price creation are the only writes a client can safely retry.
var idempotentRoutes = []struct {
	method string
	match  func(path string) bool
}{
	{http.MethodPost, matchExact("/v1/rentals")},
	{http.MethodPost, matchExact("/v1/pricing")},
	{http.MethodPost, matchPrefixSuffix("/v1/products/", "/pricing")},
}

// Idempotency makes covered writes safe to retry. The first request with a
// given Idempotency-Key reserves it and its response is stored; a retry with
// the same body gets that response back, a retry with a different body or
// one that arrives while the first is still running gets a 409. Server
// errors release the key so the client can try again.
func Idempotency(store pkgredis.IdempotencyStore, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if clientKey == "" || store == nil || !isIdempotentRoute(r.Method, requestPath(r)) {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			if len(clientKey) > maxIdempotencyKeyLen {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
					WithDetails(map[string]string{idempotencyHeader: fmt.Sprintf("may not be greater than %d characters", maxIdempotencyKeyLen)}))
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			gate := idempotencyGate{
				store: store,
				key:   store.IdempotencyKey(buildScope(r), clientKey),
				hash:  hashBody(body),
				ttl:   ttl,
			}
			existing, err := gate.reserve(ctx)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
				return
			}
			if existing != nil {
				switch {
				case existing.Hash != gate.hash:
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
				case existing.State != recordDone:
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "a request with this idempotency key is still in progress"))
				default:
					replay(w, existing)
				}
				return
			}

			capture := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(capture, r)

			detached := context.WithoutCancel(ctx)
			if capture.statusCode() >= http.StatusInternalServerError {
				if err := gate.release(detached); err != nil && logg != nil {
					logg.Error(ctx, "idempotency.release_failed", err)
				}
				return
			}
			if err := gate.commit(detached, capture); err != nil && logg != nil {
				logg.Error(ctx, "idempotency.commit_failed", err)
			}
		})
	}
}

type idempotencyGate struct {
	store pkgredis.IdempotencyStore
	key   string
	hash  string
	ttl   time.Duration
}

// reserve claims the key for this request. It returns the record already
// stored when another request got there first.
func (g idempotencyGate) reserve(ctx context.Context) (*replayRecord, error) {
	pending, err := json.Marshal(replayRecord{State: recordPending, Hash: g.hash})
	if err != nil {
		return nil, err
	}
	// a second pass covers a record expiring between SETNX and GET
	for attempt := 0; attempt < 2; attempt++ {
		won, err := g.store.SetNX(ctx, g.key, string(pending), pendingTTL)
		if err != nil {
			return nil, err
		}
		if won {
			return nil, nil
		}
		raw, err := g.store.Get(ctx, g.key)
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var record replayRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("decode idempotency record: %w", err)
		}
		return &record, nil
	}
	return nil, errors.New("idempotency key kept changing")
}

func (g idempotencyGate) commit(ctx context.Context, capture *responseCapture) error {
	payload, err := json.Marshal(replayRecord{
		State:       recordDone,
		Hash:        g.hash,
		Status:      capture.statusCode(),
		ContentType: capture.Header().Get("Content-Type"),
		Body:        capture.body.Bytes(),
	})
	if err != nil {
		return err
	}
	if err := g.store.Del(ctx, g.key); err != nil {
		return err
	}
	_, err = g.store.SetNX(ctx, g.key, string(payload), g.ttl)
	return err
}

func (g idempotencyGate) release(ctx context.Context) error {
	return g.store.Del(ctx, g.key)
}

func replay(w http.ResponseWriter, record *replayRecord) {
	if record.ContentType != "" {
		w.Header().Set("Content-Type", record.ContentType)
	}
	w.Header().Set(idempotentReplayHeader, "true")
	w.WriteHeader(record.Status)
	_, _ = w.Write(record.Body)
}

func buildScope(r *http.Request) string {
	return strings.Join([]string{clientIP(r), r.Method, requestPath(r)}, "|")
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// requestPath feeds the route table. chi resolves the route pattern only
// after this middleware has run.
func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	if path := strings.TrimSuffix(r.URL.Path, "/"); path != "" {
		return path
	}
	return r.URL.Path
}

func isIdempotentRoute(method, path string) bool {
	if path == "" {
		return false
	}
	for _, route := range idempotentRoutes {
		if route.method == method && route.match(path) {
			return true
		}
	}
	return false
}

func matchExact(want string) func(string) bool {
	return func(path string) bool { return path == want }
}

func matchPrefixSuffix(prefix, suffix string) func(string) bool {
	return func(path string) bool {
		return len(path) > len(prefix)+len(suffix) && strings.HasPrefix(path, prefix) && strings.HasSuffix(path, suffix)
	}
}

type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (c *responseCapture) WriteHeader(code int) {
	if c.status == 0 {
		c.status = code
	}
	c.ResponseWriter.WriteHeader(code)
}

func (c *responseCapture) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

func (c *responseCapture) statusCode() int {
	if c.status == 0 {
		return http.StatusOK
	}
	return c.status
}
