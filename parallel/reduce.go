package parallel

// BinaryOp is an associative reduction operator with an identity element
// (spec §4.5). This package specializes T to float64: the workgroup-local
// shared memory a ParallelContext exposes (WorkgroupValues) is itself
// float64, and every primitive this module rasterizes through (coverage
// sums, histogram counts coerced to float64, gradient-stop reductions)
// fits that type; a fully generic BinaryOp[T] would need per-workgroup
// typed shared memory the ParallelContext interface does not carry.
type BinaryOp struct {
	Apply    func(a, b float64) float64
	Identity float64
}

// SumOp is the float64 "+" BinaryOp, the operator spec §8's reduce
// boundary scenario uses.
var SumOp = BinaryOp{Apply: func(a, b float64) float64 { return a + b }, Identity: 0}

// Reduce performs spec §4.5's Blelloch-style tree reduction: one output
// per workgroup, each invocation first folding grainSize input elements
// serially, then participating in a logWorkgroupSize-barrier tree
// reduction of its workgroup's partial sums. Out-of-range reads (when
// len(input) is not a multiple of workgroupSize*grainSize) use op.Identity,
// per spec §4.5's tolerance requirement.
func Reduce(exec *Executor, input []float64, op BinaryOp, workgroupSize, grainSize uint32) ([]float64, error) {
	if workgroupSize == 0 || grainSize == 0 {
		return nil, newError("Reduce", InvalidInput, ErrEmptyDispatch)
	}
	chunk := int(workgroupSize * grainSize)
	numWorkgroups := uint32(ceilDivInt(len(input), chunk))
	if numWorkgroups == 0 {
		return []float64{op.Identity}, nil
	}
	output := make([]float64, numWorkgroups)

	kernel := func(ctx ParallelContext) {
		wg := ctx.WorkgroupID().X
		local := ctx.LocalID().X
		shared := ctx.WorkgroupValues()

		base := int(wg*workgroupSize+local) * int(grainSize)
		partial := op.Identity
		for g := 0; g < int(grainSize); g++ {
			idx := base + g
			if idx < len(input) {
				partial = op.Apply(partial, input[idx])
			}
		}
		shared[local] = partial
		ctx.WorkgroupBarrier()

		for stride := workgroupSize / 2; stride >= 1; stride /= 2 {
			if local < stride {
				shared[local] = op.Apply(shared[local], shared[local+stride])
			}
			ctx.WorkgroupBarrier()
			if stride == 1 {
				break
			}
		}
		if local == 0 {
			output[wg] = shared[0]
		}
	}

	if err := exec.Dispatch(numWorkgroups, workgroupSize, int(workgroupSize), nil, kernel); err != nil {
		return nil, err
	}
	return output, nil
}

// ReduceAll folds input down to a single scalar, repeatedly dispatching
// Reduce over the previous pass's per-workgroup outputs until one value
// remains. Matches spec §8's reduce boundary scenario: ReduceAll of
// [1..1024] with SumOp, workgroupSize=64, grainSize=4 equals 524800.
func ReduceAll(exec *Executor, input []float64, op BinaryOp, workgroupSize, grainSize uint32) (float64, error) {
	current := input
	for len(current) > 1 {
		next, err := Reduce(exec, current, op, workgroupSize, grainSize)
		if err != nil {
			return 0, err
		}
		if len(next) == len(current) {
			// no further reduction possible (single-workgroup dispatch);
			// fold the remainder sequentially rather than loop forever.
			acc := op.Identity
			for _, v := range next {
				acc = op.Apply(acc, v)
			}
			return acc, nil
		}
		current = next
	}
	if len(current) == 0 {
		return op.Identity, nil
	}
	return current[0], nil
}

func ceilDivInt(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
