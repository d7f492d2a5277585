package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/token"
)

// DefaultTTL is how long a cached decision stays fresh.
const DefaultTTL = 60 * time.Second

// ErrRemote marks a decision that could not be obtained because the
// access service call failed. Callers must treat it as "unknown", not as
// "denied": the error is never cached and the next call retries.
var ErrRemote = errors.New("remote access check failed")

// Checker answers permission checks. The access service's engine and the
// HTTP client in this package both implement it.
type Checker interface {
	CheckAccess(ctx context.Context, userID, permissionCode string, scope access.Scope) (bool, error)
}

type cacheEntry struct {
	allowed   bool
	expiresAt time.Time
}

// Cache wraps a Checker with a TTL decision cache. Entries are keyed by
// user, permission, and scope; both grants and denials are cached.
type Cache struct {
	checker Checker
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// New creates a cache in front of a checker. A non-positive ttl falls back
// to DefaultTTL.
func New(checker Checker, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{
		checker: checker,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Check returns whether the user holds the permission in the scope,
// consulting the cache before the remote checker. Remote failures return
// ErrRemote and leave the cache untouched.
func (c *Cache) Check(ctx context.Context, userID, permissionCode string, scope access.Scope) (bool, error) {
	key := cacheKey(userID, permissionCode, scope)

	c.mu.Lock()
	entry, found := c.entries[key]
	if found && c.now().Before(entry.expiresAt) {
		c.mu.Unlock()
		return entry.allowed, nil
	}
	c.mu.Unlock()

	allowed, err := c.checker.CheckAccess(ctx, userID, permissionCode, scope)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRemote, err)
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{allowed: allowed, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return allowed, nil
}

// CheckToken answers a check for an authenticated caller. When the scope
// is entirely empty and the token's permissions claim lists the code, the
// grant is answered from the claim alone, since the claim is the
// scope-blind permission union. A claim miss is not a denial: the claim is
// a snapshot from issuance time, so the check falls through to the
// cache/remote path, which also handles every constrained scope.
func (c *Cache) CheckToken(ctx context.Context, claims *token.Claims, permissionCode string, scope access.Scope) (bool, error) {
	if scope.IsEmpty() {
		for _, code := range claims.Permissions {
			if code == permissionCode {
				return true, nil
			}
		}
	}

	return c.Check(ctx, claims.Subject, permissionCode, scope)
}

// Invalidate drops every cached decision. Call it after changing roles or
// rules so stale grants do not outlive the TTL.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len reports the number of cached decisions, fresh or expired.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func cacheKey(userID, permissionCode string, scope access.Scope) string {
	return userID + "|" + permissionCode + "|" + scope.Key()
}
