package cag

import (
	"sort"
	"sync"

	"github.com/gogpu/cag/parallel"
)

// FindIntersectionsParallel is FindIntersections' workgroup-dispatched
// variant, built on the parallel package's CPU simulator (spec §4.1 step
// 2 / §4.5). Each invocation owns one edge index i and tests it against
// every higher-indexed edge whose AABB overlaps it, exactly as the
// single-threaded findIntersections does; a per-edge mutex pair (locked
// in index order to avoid deadlock) serializes the two invocations that
// can race on the same edge's Intersections slice — one owning i, the
// other owning some j' < j that also pairs against j.
//
// Results are identical to FindIntersections, only the partitioning of
// the O(n^2) pair-test work across a dispatch differs; call exactly one
// of FindIntersections or FindIntersectionsParallel per Arrangement.
func (a *Arrangement) FindIntersectionsParallel(exec *parallel.Executor, workgroupSize uint32) error {
	edges := a.Edges
	n := len(edges)
	if n < 2 {
		return nil
	}
	if workgroupSize == 0 {
		workgroupSize = 64
	}

	bounds := make([]aabb, n)
	for i := range edges {
		bounds[i] = boundsOf(edges[i])
	}
	locks := make([]sync.Mutex, n)

	numWorkgroups := uint32((n + int(workgroupSize) - 1) / int(workgroupSize))
	kernel := func(ctx parallel.ParallelContext) {
		i := int(ctx.GlobalID().X)
		if i >= n {
			return
		}
		for j := i + 1; j < n; j++ {
			if !bounds[i].overlaps(bounds[j]) {
				continue
			}
			lockPair(locks, i, j)
			intersectPair(&edges[i], &edges[j])
			unlockPair(locks, i, j)
		}
	}

	if err := exec.Dispatch(numWorkgroups, workgroupSize, 0, nil, kernel); err != nil {
		return err
	}

	for i := range edges {
		sort.Slice(edges[i].Intersections, func(a, b int) bool {
			return edges[i].Intersections[a].T.Cmp(edges[i].Intersections[b].T) < 0
		})
	}
	return nil
}

// lockPair/unlockPair lock two edges' mutexes in a fixed (min, max) order
// so that concurrent invocations locking the same pair in either role
// never deadlock.
func lockPair(locks []sync.Mutex, i, j int) {
	if i > j {
		i, j = j, i
	}
	locks[i].Lock()
	locks[j].Lock()
}

func unlockPair(locks []sync.Mutex, i, j int) {
	if i > j {
		i, j = j, i
	}
	locks[j].Unlock()
	locks[i].Unlock()
}
