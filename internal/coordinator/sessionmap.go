package coordinator

import (
	"sync"
	"time"
)

// sessionMapShardCount mirrors the signer package's nonce store sharding;
// the coordinator's session map is the other hot concurrent map in this
// process.
const sessionMapShardCount = 16

// sessionMap is a sharded concurrent map from SessionID to *SessionState.
type sessionMap struct {
	shards [sessionMapShardCount]*sessionMapShard
}

type sessionMapShard struct {
	mu       sync.RWMutex
	sessions map[SessionID]*SessionState
}

func newSessionMap() *sessionMap {
	m := &sessionMap{}
	for i := range m.shards {
		m.shards[i] = &sessionMapShard{sessions: make(map[SessionID]*SessionState)}
	}
	return m
}

func (m *sessionMap) shardFor(id SessionID) *sessionMapShard {
	return m.shards[int(id[15])%len(m.shards)]
}

func (m *sessionMap) store(id SessionID, state *SessionState) {
	shard := m.shardFor(id)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.sessions[id] = state
}

func (m *sessionMap) load(id SessionID) (*SessionState, bool) {
	shard := m.shardFor(id)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	state, ok := shard.sessions[id]
	return state, ok
}

func (m *sessionMap) delete(id SessionID) bool {
	shard := m.shardFor(id)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	_, ok := shard.sessions[id]
	delete(shard.sessions, id)
	return ok
}

func (m *sessionMap) len() int {
	total := 0
	for _, shard := range m.shards {
		shard.mu.RLock()
		total += len(shard.sessions)
		shard.mu.RUnlock()
	}
	return total
}

// expiredSince returns the IDs of every session older than ttl as of now.
func (m *sessionMap) expiredSince(now time.Time, ttl time.Duration) []SessionID {
	var expired []SessionID
	for _, shard := range m.shards {
		shard.mu.RLock()
		for id, state := range shard.sessions {
			if state.age(now) > ttl {
				expired = append(expired, id)
			}
		}
		shard.mu.RUnlock()
	}
	return expired
}
