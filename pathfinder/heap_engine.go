package pathfinder

import "container/heap"

// HeapEngine is a binary-heap reference implementation of the same
// contract as BucketEngine, used for cross-validation.
type HeapEngine struct{}

func NewHeapEngine() *HeapEngine { return &HeapEngine{} }

type arrivalEvent struct {
	time    uint32
	station uint32
}

type eventQueue []arrivalEvent

func (q eventQueue) Len() int            { return len(q) }
func (q eventQueue) Less(i, j int) bool  { return q[i].time < q[j].time }
func (q eventQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x interface{}) { *q = append(*q, x.(arrivalEvent)) }
func (q *eventQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func (e *HeapEngine) Query(g Graph, origins []uint32) ArrivalTable {
	table := newArrivalTable(g.NumStations())

	queue := &eventQueue{}
	for _, origin := range origins {
		table.Seconds[origin] = 0
		table.Reached[origin] = true
		heap.Push(queue, arrivalEvent{time: 0, station: origin})
	}

	for queue.Len() > 0 {
		event := heap.Pop(queue).(arrivalEvent)
		if event.time > table.Seconds[event.station] {
			// Superseded by a better arrival found after this entry
			// was queued.
			continue
		}

		numEdges := g.NumEdges(int(event.station))
		for i := 0; i < numEdges; i++ {
			edge := g.Edge(int(event.station), i)
			t := event.time + edge.Duration
			if table.Reached[edge.ToStation] && t >= table.Seconds[edge.ToStation] {
				continue
			}
			table.Seconds[edge.ToStation] = t
			table.Reached[edge.ToStation] = true
			heap.Push(queue, arrivalEvent{time: t, station: edge.ToStation})
		}
	}

	return table
}
