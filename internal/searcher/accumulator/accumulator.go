// Package accumulator provides a sharded int -> float64 map that many
// goroutines can add into without contending on a single lock.
package accumulator

import "sync"

type shard struct {
	mu     sync.Mutex
	values map[int]float64
}

type Accumulator struct {
	shards []shard
}

// New creates an accumulator with shardCount shards, at least one.
func New(shardCount int) *Accumulator {
	if shardCount < 1 {
		shardCount = 1
	}
	a := &Accumulator{shards: make([]shard, shardCount)}
	for i := range a.shards {
		a.shards[i].values = make(map[int]float64)
	}
	return a
}

// ShardCountFor sizes an accumulator for a collection of documentCount
// documents.
func ShardCountFor(documentCount int) int {
	return max(4, documentCount/100)
}

func (a *Accumulator) shardFor(key int) *shard {
	return &a.shards[uint64(key)%uint64(len(a.shards))]
}

// Add adds delta to key, creating the entry at zero.
func (a *Accumulator) Add(key int, delta float64) {
	s := a.shardFor(key)
	s.mu.Lock()
	s.values[key] += delta
	s.mu.Unlock()
}

// Erase removes key. It must not race with an Add for the same key; callers
// finish all adds before erasing.
func (a *Accumulator) Erase(key int) {
	s := a.shardFor(key)
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

// Drain merges every shard into one map and leaves the accumulator empty.
func (a *Accumulator) Drain() map[int]float64 {
	out := make(map[int]float64, a.Len())
	for i := range a.shards {
		s := &a.shards[i]
		s.mu.Lock()
		for k, v := range s.values {
			out[k] = v
		}
		s.values = make(map[int]float64)
		s.mu.Unlock()
	}
	return out
}

func (a *Accumulator) Len() int {
	n := 0
	for i := range a.shards {
		s := &a.shards[i]
		s.mu.Lock()
		n += len(s.values)
		s.mu.Unlock()
	}
	return n
}
