package parallel

// ScanInclusive runs spec §4.5's two-level scan: an intra-workgroup
// Hillis-Steele inclusive scan, an exclusive scan over the per-workgroup
// partial totals, and a uniform add of each workgroup's prefix back into
// its elements. Out-of-range reads (padding the last partial workgroup)
// use op.Identity.
func ScanInclusive(exec *Executor, input []float64, op BinaryOp, workgroupSize uint32) ([]float64, error) {
	if workgroupSize == 0 {
		return nil, newError("ScanInclusive", InvalidInput, ErrEmptyDispatch)
	}
	n := len(input)
	if n == 0 {
		return nil, nil
	}
	numWorkgroups := uint32(ceilDivInt(n, int(workgroupSize)))
	output := make([]float64, n)
	partials := make([]float64, numWorkgroups)

	kernel := func(ctx ParallelContext) {
		wg := ctx.WorkgroupID().X
		local := ctx.LocalID().X
		idx := int(ctx.GlobalID().X)
		shared := ctx.WorkgroupValues()

		if idx < n {
			shared[local] = input[idx]
		} else {
			shared[local] = op.Identity
		}
		ctx.WorkgroupBarrier()

		for offset := uint32(1); offset < workgroupSize; offset *= 2 {
			var next float64
			if local >= offset {
				next = op.Apply(shared[local-offset], shared[local])
			} else {
				next = shared[local]
			}
			ctx.WorkgroupBarrier()
			shared[local] = next
			ctx.WorkgroupBarrier()
		}

		if idx < n {
			output[idx] = shared[local]
		}
		if local == workgroupSize-1 {
			partials[wg] = shared[local]
		}
	}

	if err := exec.Dispatch(numWorkgroups, workgroupSize, int(workgroupSize), nil, kernel); err != nil {
		return nil, err
	}

	// Exclusive scan of per-workgroup partials: small (numWorkgroups is the
	// dispatch's workgroup count), folded sequentially rather than via a
	// second dispatch.
	prefix := make([]float64, numWorkgroups)
	acc := op.Identity
	for wg := uint32(0); wg < numWorkgroups; wg++ {
		prefix[wg] = acc
		acc = op.Apply(acc, partials[wg])
	}

	// Uniform add: fold each element's workgroup prefix back in.
	for idx := 0; idx < n; idx++ {
		wg := uint32(idx) / workgroupSize
		if wg == 0 {
			continue
		}
		output[idx] = op.Apply(prefix[wg], output[idx])
	}
	return output, nil
}

// ScanExclusive derives the exclusive scan from ScanInclusive: excl[0] is
// op.Identity, excl[i] is incl[i-1] for i>0. This holds for any associative
// op without requiring an inverse.
func ScanExclusive(exec *Executor, input []float64, op BinaryOp, workgroupSize uint32) ([]float64, error) {
	incl, err := ScanInclusive(exec, input, op, workgroupSize)
	if err != nil {
		return nil, err
	}
	excl := make([]float64, len(incl))
	excl[0] = op.Identity
	for i := 1; i < len(incl); i++ {
		excl[i] = incl[i-1]
	}
	return excl, nil
}
