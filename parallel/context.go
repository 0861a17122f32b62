package parallel

import "sync"

// Dim3 is a 3D index or extent, matching the GPU workgroup-grid model
// spec §4.5 describes. The executor fills in X only: Y and Z of every
// Dim3 it hands to a kernel are zero. The other two dimensions are carried
// for API fidelity with a GPU backend (out of scope per spec §1) rather
// than exercised here.
type Dim3 struct {
	X, Y, Z uint32
}

// ParallelContext is what one invocation of a ParallelKernel sees: its
// position in the dispatch, and the two barrier operations spec §5
// distinguishes by memory scope.
type ParallelContext interface {
	// LocalID is this invocation's index within its workgroup.
	LocalID() Dim3
	// WorkgroupID is this invocation's workgroup's index within the dispatch.
	WorkgroupID() Dim3
	// GlobalID is LocalID plus WorkgroupID*WorkgroupSize.
	GlobalID() Dim3
	// WorkgroupSize is the dispatch's per-workgroup invocation count.
	WorkgroupSize() Dim3
	// NumWorkgroups is the dispatch's workgroup count.
	NumWorkgroups() Dim3
	// WorkgroupValues is shared memory local to this invocation's
	// workgroup: every invocation in the workgroup sees the same backing
	// slice, safe to read only after a WorkgroupBarrier following the
	// writes it depends on.
	WorkgroupValues() []float64
	// WorkgroupBarrier suspends until every invocation in this
	// invocation's workgroup has reached the same barrier call,
	// establishing happens-before for workgroup-memory writes.
	WorkgroupBarrier()
	// StorageBarrier is WorkgroupBarrier's counterpart for global
	// (cross-workgroup-visible) storage-buffer writes.
	StorageBarrier()
}

// invocation is the CPU simulator's concrete ParallelContext: one per
// goroutine, sharing a *rendezvous barrier and a WorkgroupValues slice
// with its workgroup siblings.
type invocation struct {
	local, workgroup, global Dim3
	workgroupSize            Dim3
	numWorkgroups             Dim3
	shared                    []float64
	barrier                   *rendezvous
}

func (i *invocation) LocalID() Dim3          { return i.local }
func (i *invocation) WorkgroupID() Dim3      { return i.workgroup }
func (i *invocation) GlobalID() Dim3         { return i.global }
func (i *invocation) WorkgroupSize() Dim3    { return i.workgroupSize }
func (i *invocation) NumWorkgroups() Dim3    { return i.numWorkgroups }
func (i *invocation) WorkgroupValues() []float64 { return i.shared }
func (i *invocation) WorkgroupBarrier()      { i.barrier.wait() }
func (i *invocation) StorageBarrier()        { i.barrier.wait() }

// rendezvous is a reusable cyclic barrier: n goroutines calling wait()
// block until all n have called it, then all are released together.
// This is the CPU simulator's stand-in for the cooperative-coroutine
// suspension spec §5 describes: every barrier call is a suspension point,
// and the "rotate to the next invocation" semantics fall out of the
// standard library scheduler instead of an explicit coroutine switch.
type rendezvous struct {
	mu         sync.Mutex
	cond       *sync.Cond
	n          int
	count      int
	generation int
}

func newRendezvous(n int) *rendezvous {
	r := &rendezvous{n: n}
	r.cond = sync.NewCond(&r.mu)
	return r
}

func (r *rendezvous) wait() {
	r.mu.Lock()
	gen := r.generation
	r.count++
	if r.count == r.n {
		r.count = 0
		r.generation++
		r.cond.Broadcast()
	} else {
		for r.generation == gen {
			r.cond.Wait()
		}
	}
	r.mu.Unlock()
}
