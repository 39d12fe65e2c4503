package signer

import (
	"sync"

	"github.com/google/uuid"

	"github.com/frostlink/frost/internal/frost"
)

// nonceStore is a sharded concurrent map from SessionId to SigningNonces,
// with atomic insert and atomic remove-returning semantics. A sharded
// concurrent map (fine-grained locking) suffices here: the hot path is
// one remove-return per signing operation and contends only between
// sessions that share a shard. Each shard is an independent mutex-guarded map, so
// sign calls for sessions that fall in different shards never block each
// other.
type nonceStore struct {
	shards []*nonceShard
}

type nonceShard struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*frost.SigningNonces
}

func newNonceStore(shardCount int) *nonceStore {
	shards := make([]*nonceShard, shardCount)
	for i := range shards {
		shards[i] = &nonceShard{entries: make(map[uuid.UUID]*frost.SigningNonces)}
	}
	return &nonceStore{shards: shards}
}

func (n *nonceStore) shardFor(session uuid.UUID) *nonceShard {
	// The low byte of a version-4 UUID is as uniformly distributed as any
	// other; no need for a general-purpose hash function here.
	return n.shards[int(session[15])%len(n.shards)]
}

// insert stores nonces under session, returning true if it replaced an
// existing record.
func (n *nonceStore) insert(session uuid.UUID, nonces *frost.SigningNonces) bool {
	shard := n.shardFor(session)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	_, existed := shard.entries[session]
	shard.entries[session] = nonces
	return existed
}

// removeReturning atomically takes and deletes the nonce record for
// session. This is the store's single linearization point: only one caller
// can ever observe ok == true for a given session, across any number of
// concurrent callers.
func (n *nonceStore) removeReturning(session uuid.UUID) (*frost.SigningNonces, bool) {
	shard := n.shardFor(session)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	nonces, ok := shard.entries[session]
	if ok {
		delete(shard.entries, session)
	}
	return nonces, ok
}
