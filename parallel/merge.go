package parallel

// Merge runs spec §4.5's merge-path parallel merge: it partitions the
// conceptual merged sequence of a and b into numPartitions equal-length
// diagonal segments via binary search (mergePathSplit), then dispatches
// one invocation per segment to serially two-pointer-merge its assigned
// slice of a and b directly into its slice of the output. less must be a
// strict order; ties resolve to a (stable with respect to a preceding b
// of equal rank).
func Merge(exec *Executor, a, b []float64, less func(x, y float64) bool, numPartitions uint32) ([]float64, error) {
	if numPartitions == 0 {
		return nil, newError("Merge", InvalidInput, ErrEmptyDispatch)
	}
	total := len(a) + len(b)
	if total == 0 {
		return nil, nil
	}
	if int(numPartitions) > total {
		numPartitions = uint32(total)
	}

	aStarts := make([]int, numPartitions+1)
	bStarts := make([]int, numPartitions+1)
	for p := uint32(0); p <= numPartitions; p++ {
		d := int(p) * total / int(numPartitions)
		ai, bi := mergePathSplit(a, b, less, d)
		aStarts[p] = ai
		bStarts[p] = bi
	}

	out := make([]float64, total)
	kernel := func(ctx ParallelContext) {
		p := int(ctx.GlobalID().X)
		if p >= int(numPartitions) {
			return
		}
		ai, aEnd := aStarts[p], aStarts[p+1]
		bi, bEnd := bStarts[p], bStarts[p+1]
		oi := ai + bi
		for ai < aEnd && bi < bEnd {
			if less(b[bi], a[ai]) {
				out[oi] = b[bi]
				bi++
			} else {
				out[oi] = a[ai]
				ai++
			}
			oi++
		}
		for ai < aEnd {
			out[oi] = a[ai]
			ai++
			oi++
		}
		for bi < bEnd {
			out[oi] = b[bi]
			bi++
			oi++
		}
	}

	if err := exec.Dispatch(numPartitions, 1, 0, nil, kernel); err != nil {
		return nil, err
	}
	return out, nil
}

// mergePathSplit finds the (ai, bi) split point on the merge path at
// diagonal d: the number of elements from a and from b, respectively,
// that a sequential merge of a and b would have consumed after producing
// d output elements.
func mergePathSplit(a, b []float64, less func(x, y float64) bool, d int) (int, int) {
	lo := d - len(b)
	if lo < 0 {
		lo = 0
	}
	hi := d
	if hi > len(a) {
		hi = len(a)
	}
	for lo < hi {
		mid := (lo + hi) / 2
		if less(b[d-mid-1], a[mid]) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, d - lo
}
