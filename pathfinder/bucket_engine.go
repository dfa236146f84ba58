package pathfinder

import "github.com/jacqueslucke/trip-atlas/bucketqueue"

const (
	defaultSecondsPerBucket uint32 = 30
	defaultMaxSeconds       uint32 = 3000 * 60
)

// BucketEngine is the time-bucketed Dijkstra variant: since every edge
// weight is a small non-negative integer and arrival times are bounded,
// draining buckets in time order beats a binary heap on this workload.
type BucketEngine struct {
	secondsPerBucket uint32
	maxSeconds       uint32
}

type BucketEngineOption func(*BucketEngine)

func WithSecondsPerBucket(v uint32) BucketEngineOption {
	return func(e *BucketEngine) { e.secondsPerBucket = v }
}

func WithMaxSeconds(v uint32) BucketEngineOption {
	return func(e *BucketEngine) { e.maxSeconds = v }
}

func NewBucketEngine(opts ...BucketEngineOption) *BucketEngine {
	e := &BucketEngine{
		secondsPerBucket: defaultSecondsPerBucket,
		maxSeconds:       defaultMaxSeconds,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *BucketEngine) Query(g Graph, origins []uint32) ArrivalTable {
	table := newArrivalTable(g.NumStations())
	bucketCount := int(e.maxSeconds/e.secondsPerBucket) + 1

	pool := bucketqueue.NewPool()
	buckets := make([]bucketqueue.List, bucketCount)
	for i := range buckets {
		buckets[i] = bucketqueue.NewList()
	}

	for _, origin := range origins {
		table.Seconds[origin] = 0
		table.Reached[origin] = true
		buckets[0].Push(pool, origin)
	}

	for b := 0; b < bucketCount; b++ {
		for !buckets[b].IsEmpty() {
			// Swap-snapshot: move the bucket's contents aside so
			// re-insertions into bucket b during this sweep land in a
			// fresh list and get their own drain pass.
			work := buckets[b]
			buckets[b] = bucketqueue.NewList()

			for h := work.FirstChunk(); h.Valid(); h = pool.NextChunk(h) {
				for _, station := range pool.Slice(h) {
					departure := table.Seconds[station]
					numEdges := g.NumEdges(int(station))
					for i := 0; i < numEdges; i++ {
						edge := g.Edge(int(station), i)
						t := departure + edge.Duration
						if table.Reached[edge.ToStation] && t >= table.Seconds[edge.ToStation] {
							continue
						}
						table.Seconds[edge.ToStation] = t
						table.Reached[edge.ToStation] = true

						targetBucket := int(t / e.secondsPerBucket)
						switch {
						case targetBucket == b:
							buckets[b].Push(pool, edge.ToStation)
						case targetBucket < bucketCount:
							buckets[targetBucket].Push(pool, edge.ToStation)
						default:
							// Beyond the horizon: arrival is recorded but
							// the station is not explored further.
						}
					}
				}
			}

			work.Clear(pool)
		}
	}

	return table
}
