// Package bucketqueue implements a pooled, chunked index list used by the
// pathfinder's time-bucketed Dijkstra variant to track which stations
// were reached in a given time bucket without allocating one slice per
// bucket.
//
// Stations are appended to fixed-capacity chunks of 16 indices; once a
// chunk fills, a fresh one is pulled from a shared Pool rather than
// growing a slice, and emptied chunks are returned to the pool instead
// of being discarded. A single Pool can back thousands of Lists (one per
// time bucket) with a small, steady set of live allocations.
package bucketqueue

const chunkCapacity = 16

type chunkRef int32

const noChunk chunkRef = -1

type chunk struct {
	data [chunkCapacity]uint32
	used int
	next chunkRef
}

// Pool is an arena of fixed-capacity chunks shared by many Lists. Chunks
// are identified by index rather than pointer, so growing the arena
// never invalidates a List that only remembers indices.
type Pool struct {
	arena []chunk
	free  []chunkRef
}

func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) alloc() chunkRef {
	if n := len(p.free); n > 0 {
		ref := p.free[n-1]
		p.free = p.free[:n-1]
		p.arena[ref].used = 0
		p.arena[ref].next = noChunk
		return ref
	}
	p.arena = append(p.arena, chunk{next: noChunk})
	return chunkRef(len(p.arena) - 1)
}

func (p *Pool) dealloc(ref chunkRef) {
	p.free = append(p.free, ref)
}

// List is a singly linked chain of pool-backed chunks. The zero value is
// not ready to use; call NewList.
type List struct {
	head chunkRef
}

func NewList() List {
	return List{head: noChunk}
}

func (l *List) IsEmpty() bool {
	return l.head == noChunk
}

// Push appends value to the list, pulling a new chunk from pool when the
// current head chunk is full.
func (l *List) Push(pool *Pool, value uint32) {
	if l.head != noChunk {
		c := &pool.arena[l.head]
		if c.used < chunkCapacity {
			c.data[c.used] = value
			c.used++
			return
		}
	}
	ref := pool.alloc()
	c := &pool.arena[ref]
	c.data[0] = value
	c.used = 1
	c.next = l.head
	l.head = ref
}

// Clear returns every chunk in the list to pool and empties the list.
func (l *List) Clear(pool *Pool) {
	cur := l.head
	for cur != noChunk {
		next := pool.arena[cur].next
		pool.dealloc(cur)
		cur = next
	}
	l.head = noChunk
}

// ChunkHandle identifies one chunk of a List, returned by FirstChunk and
// NextChunk so callers can walk a list's values without the pool
// allocating an iterator.
type ChunkHandle struct {
	ref   chunkRef
	valid bool
}

func (l *List) FirstChunk() ChunkHandle {
	if l.head == noChunk {
		return ChunkHandle{}
	}
	return ChunkHandle{ref: l.head, valid: true}
}

func (h ChunkHandle) Valid() bool { return h.valid }

// Slice returns the values stored in h's chunk. The returned slice
// aliases the pool's arena and is only valid until the chunk is cleared.
func (p *Pool) Slice(h ChunkHandle) []uint32 {
	c := &p.arena[h.ref]
	return c.data[:c.used]
}

func (p *Pool) NextChunk(h ChunkHandle) ChunkHandle {
	next := p.arena[h.ref].next
	if next == noChunk {
		return ChunkHandle{}
	}
	return ChunkHandle{ref: next, valid: true}
}
