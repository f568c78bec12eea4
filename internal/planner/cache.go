// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package planner

import (
	"context"
	"strconv"
	"sync"

	"github.com/tomtom215/rendezvous/internal/events"
	"github.com/tomtom215/rendezvous/internal/metrics"
	"github.com/tomtom215/rendezvous/internal/recommend"
)

// generations counts invalidations. A ranking is cached only if no
// invalidation covering it happened between reading its inputs and storing
// the result. mu also serializes cache writes against purges.
type generations struct {
	mu    sync.Mutex
	all   uint64
	group uint64
	users map[int64]uint64
}

// cacheStamp is the generation pair observed before a ranking reads storage.
type cacheStamp struct {
	all   uint64
	scope uint64
}

func (s *Service) userStamp(userID int64) cacheStamp {
	s.gens.mu.Lock()
	defer s.gens.mu.Unlock()
	return cacheStamp{all: s.gens.all, scope: s.gens.users[userID]}
}

func (s *Service) groupStamp() cacheStamp {
	s.gens.mu.Lock()
	defer s.gens.mu.Unlock()
	return cacheStamp{all: s.gens.all, scope: s.gens.group}
}

// storeSingle caches a user's ranking unless the user was invalidated after
// stamp was taken.
func (s *Service) storeSingle(key string, userID int64, stamp cacheStamp, ranked []recommend.Scored) bool {
	if s.singleCache == nil {
		return false
	}
	s.gens.mu.Lock()
	defer s.gens.mu.Unlock()
	if stamp != (cacheStamp{all: s.gens.all, scope: s.gens.users[userID]}) {
		return false
	}
	s.singleCache.Add(key, ranked)
	metrics.CacheSize.WithLabelValues("single").Set(float64(s.singleCache.Len()))
	return true
}

// storeGroup caches a group ranking unless any member was invalidated after
// stamp was taken.
func (s *Service) storeGroup(key string, stamp cacheStamp, ranked []recommend.GroupScore) bool {
	if s.groupCache == nil {
		return false
	}
	s.gens.mu.Lock()
	defer s.gens.mu.Unlock()
	if stamp != (cacheStamp{all: s.gens.all, scope: s.gens.group}) {
		return false
	}
	s.groupCache.Add(key, ranked)
	metrics.CacheSize.WithLabelValues("group").Set(float64(s.groupCache.Len()))
	return true
}

// InvalidateUser drops the cached single-user rankings of userID and every
// group ranking.
func (s *Service) InvalidateUser(userID int64) int {
	s.gens.mu.Lock()
	defer s.gens.mu.Unlock()
	if s.gens.users == nil {
		s.gens.users = make(map[int64]uint64)
	}
	s.gens.users[userID]++
	s.gens.group++

	removed := 0
	if s.singleCache != nil {
		removed += s.singleCache.RemovePrefix("single:" + strconv.FormatInt(userID, 10) + ":")
		metrics.CacheSize.WithLabelValues("single").Set(float64(s.singleCache.Len()))
	}
	if s.groupCache != nil {
		removed += s.groupCache.Len()
		s.groupCache.Purge()
		metrics.CacheSize.WithLabelValues("group").Set(0)
	}
	return removed
}

// InvalidateAll drops every cached ranking.
func (s *Service) InvalidateAll() int {
	s.gens.mu.Lock()
	defer s.gens.mu.Unlock()
	s.gens.all++

	removed := 0
	if s.singleCache != nil {
		removed += s.singleCache.Len()
		s.singleCache.Purge()
		metrics.CacheSize.WithLabelValues("single").Set(0)
	}
	if s.groupCache != nil {
		removed += s.groupCache.Len()
		s.groupCache.Purge()
		metrics.CacheSize.WithLabelValues("group").Set(0)
	}
	return removed
}

// CleanupExpired evicts expired cache entries and returns how many were
// removed.
func (s *Service) CleanupExpired() int {
	removed := 0
	if s.singleCache != nil {
		removed += s.singleCache.CleanupExpired()
		metrics.CacheSize.WithLabelValues("single").Set(float64(s.singleCache.Len()))
	}
	if s.groupCache != nil {
		removed += s.groupCache.CleanupExpired()
		metrics.CacheSize.WithLabelValues("group").Set(float64(s.groupCache.Len()))
	}
	return removed
}

// invalidateFor drops the rankings a change on topic can affect. Activity
// and category changes touch every score; the others touch one user.
func (s *Service) invalidateFor(topic string, c events.Change) int {
	var removed int
	if topic == events.TopicActivityChanged {
		removed = s.InvalidateAll()
	} else {
		removed = s.InvalidateUser(c.UserID)
	}
	if removed > 0 {
		metrics.CacheInvalidations.WithLabelValues("ranking", topic).Add(float64(removed))
	}
	return removed
}

// commit runs after a successful write: the service's own caches are
// invalidated before returning to the caller, then the change is published
// for other subscribers.
func (s *Service) commit(ctx context.Context, topic string, c events.Change) {
	s.invalidateFor(topic, c)
	s.publish(ctx, topic, c)
}
