package parallel

import "sync/atomic"

// Histogram runs spec §4.5's workgroup-local atomic add into a shared bin
// array, followed by a strided global flush: each invocation counts
// bucketOf(i) for i in [0, n) into its workgroup's private bin row, then
// (after a workgroup barrier) the workgroup's invocations cooperatively
// flush that row into the shared global bins, striding over bucket indices
// by workgroupSize so no two invocations in the same workgroup flush the
// same bucket.
func Histogram(exec *Executor, n int, numBuckets int, bucketOf func(i int) int, workgroupSize uint32) ([]int64, error) {
	if workgroupSize == 0 {
		return nil, newError("Histogram", InvalidInput, ErrEmptyDispatch)
	}
	if n <= 0 || numBuckets <= 0 {
		return make([]int64, numBuckets), nil
	}
	numWorkgroups := uint32(ceilDivInt(n, int(workgroupSize)))

	global := make([]atomic.Int64, numBuckets)
	local := make([][]atomic.Int64, numWorkgroups)
	for i := range local {
		local[i] = make([]atomic.Int64, numBuckets)
	}

	kernel := func(ctx ParallelContext) {
		wg := ctx.WorkgroupID().X
		idx := int(ctx.GlobalID().X)
		if idx < n {
			b := bucketOf(idx)
			if b >= 0 && b < numBuckets {
				local[wg][b].Add(1)
			}
		}
		ctx.WorkgroupBarrier()

		stride := int(ctx.WorkgroupSize().X)
		for b := int(ctx.LocalID().X); b < numBuckets; b += stride {
			if v := local[wg][b].Load(); v != 0 {
				global[b].Add(v)
			}
		}
	}

	if err := exec.Dispatch(numWorkgroups, workgroupSize, 0, nil, kernel); err != nil {
		return nil, err
	}

	out := make([]int64, numBuckets)
	for i := range out {
		out[i] = global[i].Load()
	}
	return out, nil
}
