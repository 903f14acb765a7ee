package beam

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultParallelThreshold is the beam count at which a synchronizer with workers
// starts splitting the pass into chunks.
const DefaultParallelThreshold = 256

// Synchronizer re-poses every beam from the parent's current orientation and position.
// It must run on every tick after the parent moves; beams drift out of sync within a
// single frame otherwise.
type Synchronizer struct {
	mu        *sync.Mutex
	workers   int
	threshold int
	released  bool

	// started lazily by the first pass that reaches the threshold
	pool  []worker.Worker
	tasks chan worker.Task
	stop  chan int
}

// NewSynchronizer creates a synchronizer. With workers <= 1 all beams are processed on
// the calling goroutine. Otherwise passes over at least threshold beams are split into
// one chunk per worker and joined before Sync returns. No goroutine is started until
// the first such pass.
//
// Parameters:
//   - workers: number of pool workers (<= 1 disables the pool)
//   - threshold: minimum beam count for a parallel pass (<= 0 uses DefaultParallelThreshold)
//
// Returns:
//   - *Synchronizer: the synchronizer
func NewSynchronizer(workers, threshold int) *Synchronizer {
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	return &Synchronizer{mu: &sync.Mutex{}, workers: workers, threshold: threshold}
}

// Sync recomputes the world transform of every beam:
// WorldPosition = q·aperture.Position + p, WorldDirection = q·aperture.Direction, and
// WorldOrientation is the shortest arc from +Y onto WorldDirection.
// Beams whose aperture index no longer resolves are left untouched.
//
// Parameters:
//   - src: aperture lookup
//   - beams: beams to update
//   - parentOrientation: current parent rotation
//   - parentPosition: current parent translation
func (s *Synchronizer) Sync(src ApertureSource, beams []*Beam, parentOrientation mgl32.Quat, parentPosition mgl32.Vec3) {
	if src == nil || len(beams) == 0 {
		return
	}
	if s == nil || s.workers <= 1 || len(beams) < s.threshold {
		syncRange(src, beams, parentOrientation, parentPosition)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		syncRange(src, beams, parentOrientation, parentPosition)
		return
	}
	s.startWorkers()

	chunk := (len(beams) + s.workers - 1) / s.workers
	var wg sync.WaitGroup
	for id, start := 0, 0; start < len(beams); id, start = id+1, start+chunk {
		part := beams[start:min(start+chunk, len(beams))]
		wg.Add(1)
		s.tasks <- worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				syncRange(src, part, parentOrientation, parentPosition)
				return nil, nil
			},
		}
	}
	wg.Wait()
}

// startWorkers brings up the workers on first use. Caller must hold the mutex.
func (s *Synchronizer) startWorkers() {
	if s.pool != nil {
		return
	}
	s.tasks = make(chan worker.Task, s.workers)
	s.stop = make(chan int)
	s.pool = make([]worker.Worker, 0, s.workers)
	for id := range s.workers {
		w := worker.NewWorker(id, s.tasks, s.stop, time.Second, nil)
		w.Start()
		s.pool = append(s.pool, w)
	}
}

// Workers returns the number of running worker goroutines.
func (s *Synchronizer) Workers() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pool)
}

// Release shuts the workers down. Closing the task channel makes every worker
// return; later passes run on the calling goroutine.
func (s *Synchronizer) Release() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.released = true
	if s.pool != nil {
		close(s.tasks)
		close(s.stop)
		s.pool = nil
	}
}

func syncRange(src ApertureSource, beams []*Beam, q mgl32.Quat, p mgl32.Vec3) {
	for _, b := range beams {
		ap, ok := src.At(b.ApertureIndex)
		if !ok {
			continue
		}
		b.WorldPosition = q.Rotate(ap.Position).Add(p)
		b.WorldDirection = q.Rotate(ap.Direction)
		b.WorldOrientation = ShortestArc(b.WorldDirection)
		b.Model = modelMatrix(b.WorldPosition, b.WorldOrientation)
	}
}
