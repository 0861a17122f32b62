package parallel

import (
	"sync"
	"unsafe"

	internalparallel "github.com/gogpu/cag/internal/parallel"
)

// ParallelKernel is a function launched once per invocation by a dispatch
// (spec §4.5): it reads ctx.LocalID/WorkgroupID/GlobalID and synchronizes
// with its workgroup siblings via ctx.WorkgroupBarrier/StorageBarrier.
// Kernels must not close over mutable non-shared state (spec §9): any
// state a kernel mutates should be reachable only via ctx.WorkgroupValues
// or a resource slot declared to Dispatch.
type ParallelKernel func(ctx ParallelContext)

// ResourceKind classifies a kernel's declared resource slot (spec §5).
type ResourceKind uint8

const (
	ResourceReadOnly ResourceKind = iota
	ResourceReadWrite
	ResourceUniform
)

// ResourceSlot is one of a kernel's declared buffer/uniform bindings. The
// executor uses it only to detect aliasing read-write slots before a
// dispatch launches (spec §5: "no two read-write slots alias within a
// dispatch"); it does not otherwise mediate access to the underlying data,
// which the kernel closure reaches directly.
type ResourceSlot struct {
	Kind ResourceKind
	ptr  unsafe.Pointer
	len  int
}

// SliceSlot declares a resource slot backed by a Go slice, usable directly
// with ValidateResources / Executor.Dispatch's aliasing check.
func SliceSlot[T any](kind ResourceKind, s []T) ResourceSlot {
	if len(s) == 0 {
		return ResourceSlot{Kind: kind}
	}
	return ResourceSlot{Kind: kind, ptr: unsafe.Pointer(&s[0]), len: len(s)}
}

// ValidateResources checks that no two ReadWrite slots in slots alias the
// same backing memory, returning a KernelInvariant *Error otherwise.
func ValidateResources(slots []ResourceSlot) error {
	for i := range slots {
		if slots[i].Kind != ResourceReadWrite || slots[i].ptr == nil {
			continue
		}
		for j := i + 1; j < len(slots); j++ {
			if slots[j].Kind != ResourceReadWrite || slots[j].ptr == nil {
				continue
			}
			if slots[i].ptr == slots[j].ptr {
				return newError("ValidateResources", KernelInvariant, ErrAliasingResources)
			}
		}
	}
	return nil
}

// Executor is the CPU simulator spec §4.5/§9 describes: it implements
// ParallelExecutor by running each workgroup as a group of goroutines
// rendezvousing on barriers, and runs the workgroups of one dispatch
// concurrently via an internal/parallel.WorkerPool — the same worker-pool
// abstraction the teacher's tile renderer uses, generalized here from
// stealing arbitrary work items to running one fixed-size goroutine group
// per workgroup.
type Executor struct {
	pool *internalparallel.WorkerPool
}

// NewExecutor builds an Executor backed by a worker pool sized to
// GOMAXPROCS (workers <= 0); workgroups of a dispatch are distributed
// across it, matching gogpu/gg's WorkerPool.NewWorkerPool convention.
func NewExecutor(workers int) *Executor {
	return &Executor{pool: internalparallel.NewWorkerPool(workers)}
}

// Close releases the executor's worker pool.
func (e *Executor) Close() { e.pool.Close() }

// Dispatch launches numWorkgroups workgroups of workgroupSize invocations
// each, running kernel once per invocation. sharedSize sizes each
// workgroup's WorkgroupValues scratch slice. Dispatch blocks until every
// invocation of every workgroup has returned (spec §5: "a dispatch
// completes when every invocation has returned").
func (e *Executor) Dispatch(numWorkgroups, workgroupSize uint32, sharedSize int, resources []ResourceSlot, kernel ParallelKernel) error {
	if numWorkgroups == 0 || workgroupSize == 0 {
		return newError("Dispatch", KernelInvariant, ErrEmptyDispatch)
	}
	if err := ValidateResources(resources); err != nil {
		return err
	}

	work := make([]func(), numWorkgroups)
	for wg := uint32(0); wg < numWorkgroups; wg++ {
		wg := wg
		work[wg] = func() { runWorkgroup(wg, numWorkgroups, workgroupSize, sharedSize, kernel) }
	}
	e.pool.ExecuteAll(work)
	return nil
}

func runWorkgroup(wg, numWorkgroups, workgroupSize uint32, sharedSize int, kernel ParallelKernel) {
	shared := make([]float64, sharedSize)
	barrier := newRendezvous(int(workgroupSize))

	var invWG sync.WaitGroup
	invWG.Add(int(workgroupSize))
	for local := uint32(0); local < workgroupSize; local++ {
		local := local
		go func() {
			defer invWG.Done()
			ctx := &invocation{
				local:         Dim3{X: local},
				workgroup:     Dim3{X: wg},
				global:        Dim3{X: wg*workgroupSize + local},
				workgroupSize: Dim3{X: workgroupSize},
				numWorkgroups: Dim3{X: numWorkgroups},
				shared:        shared,
				barrier:       barrier,
			}
			kernel(ctx)
		}()
	}
	invWG.Wait()
}

// RunSingle is a convenience degenerate dispatch: one workgroup of one
// invocation, for call sites that want to run a kernel's code once without
// paying for goroutines.
func RunSingle(kernel ParallelKernel) {
	ctx := &invocation{
		workgroupSize: Dim3{X: 1},
		numWorkgroups: Dim3{X: 1},
		shared:        nil,
		barrier:       newRendezvous(1),
	}
	kernel(ctx)
}
