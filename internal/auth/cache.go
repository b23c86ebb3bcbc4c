package auth

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

// cachedSession is a resolved actor plus the expiry of the row it came from.
type cachedSession struct {
	actor     domain.Actor
	expiresAt time.Time
}

// sessionCache keeps resolved actors by auth session id so most requests
// skip the two database lookups.
type sessionCache struct {
	lru *expirable.LRU[string, cachedSession]
}

func newSessionCache(size int, ttl time.Duration) *sessionCache {
	return &sessionCache{
		lru: expirable.NewLRU[string, cachedSession](size, nil, ttl),
	}
}

// Get returns the cached actor while the session is still live at now. An
// expired entry is dropped.
func (c *sessionCache) Get(sessionID string, now time.Time) (domain.Actor, bool) {
	entry, ok := c.lru.Get(sessionID)
	if !ok {
		return domain.Actor{}, false
	}
	if !now.Before(entry.expiresAt) {
		c.lru.Remove(sessionID)
		return domain.Actor{}, false
	}
	return entry.actor, true
}

func (c *sessionCache) Set(session domain.AuthSession, actor domain.Actor) {
	c.lru.Add(session.ID, cachedSession{actor: actor, expiresAt: session.ExpiresAt})
}

// Invalidate drops a session, e.g. on logout.
func (c *sessionCache) Invalidate(sessionID string) {
	c.lru.Remove(sessionID)
}

func (c *sessionCache) Len() int {
	return c.lru.Len()
}
