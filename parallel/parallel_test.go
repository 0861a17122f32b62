package parallel

import (
	"math"
	"testing"
)

// spec §8 scenario 5: Reduce of [1..1024], op=+, workgroupSize=64,
// grainSize=4, equals 524800.
func TestReduceAllSumBoundaryScenario(t *testing.T) {
	exec := NewExecutor(0)
	defer exec.Close()

	input := make([]float64, 1024)
	for i := range input {
		input[i] = float64(i + 1)
	}

	got, err := ReduceAll(exec, input, SumOp, 64, 4)
	if err != nil {
		t.Fatalf("ReduceAll: %v", err)
	}
	if math.Abs(got-524800) > 1e-6 {
		t.Errorf("ReduceAll = %v, want 524800", got)
	}
}

// Reduce tolerates an input length that is not a multiple of
// workgroupSize*grainSize: the tail invocations see identity for their
// out-of-range reads rather than reading garbage.
func TestReduceRaggedTail(t *testing.T) {
	exec := NewExecutor(0)
	defer exec.Close()

	input := make([]float64, 130) // not a multiple of 64*1
	for i := range input {
		input[i] = 1
	}

	got, err := ReduceAll(exec, input, SumOp, 64, 1)
	if err != nil {
		t.Fatalf("ReduceAll: %v", err)
	}
	if math.Abs(got-130) > 1e-9 {
		t.Errorf("ReduceAll = %v, want 130", got)
	}
}

func TestScanInclusiveAndExclusive(t *testing.T) {
	exec := NewExecutor(0)
	defer exec.Close()

	input := make([]float64, 200)
	for i := range input {
		input[i] = 1
	}

	incl, err := ScanInclusive(exec, input, SumOp, 32)
	if err != nil {
		t.Fatalf("ScanInclusive: %v", err)
	}
	for i, v := range incl {
		want := float64(i + 1)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("incl[%d] = %v, want %v", i, v, want)
		}
	}

	excl, err := ScanExclusive(exec, input, SumOp, 32)
	if err != nil {
		t.Fatalf("ScanExclusive: %v", err)
	}
	for i, v := range excl {
		want := float64(i)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("excl[%d] = %v, want %v", i, v, want)
		}
	}
}

// spec §8 scenario 6: RadixSort is stable — two items with equal keys
// retain their relative input order.
func TestRadixSortStability(t *testing.T) {
	exec := NewExecutor(0)
	defer exec.Close()

	items := []KeyValue{
		{Key: 5, Value: "a"},
		{Key: 3, Value: "b"},
		{Key: 5, Value: "c"},
		{Key: 1, Value: "d"},
		{Key: 3, Value: "e"},
		{Key: 5, Value: "f"},
	}

	sorted, err := RadixSort(exec, items, 2, 4)
	if err != nil {
		t.Fatalf("RadixSort: %v", err)
	}
	if len(sorted) != len(items) {
		t.Fatalf("len(sorted) = %d, want %d", len(sorted), len(items))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Key > sorted[i].Key {
			t.Fatalf("not sorted ascending at %d: %v > %v", i, sorted[i-1].Key, sorted[i].Key)
		}
	}
	var keyFiveOrder []string
	for _, kv := range sorted {
		if kv.Key == 5 {
			keyFiveOrder = append(keyFiveOrder, kv.Value.(string))
		}
	}
	want := []string{"a", "c", "f"}
	for i := range want {
		if keyFiveOrder[i] != want[i] {
			t.Errorf("key-5 stability broken: got order %v, want %v", keyFiveOrder, want)
		}
	}
}

func TestHistogramCounts(t *testing.T) {
	exec := NewExecutor(0)
	defer exec.Close()

	n := 1000
	numBuckets := 10
	counts, err := Histogram(exec, n, numBuckets, func(i int) int { return i % numBuckets }, 64)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	for b, c := range counts {
		if c != 100 {
			t.Errorf("counts[%d] = %d, want 100", b, c)
		}
	}
}

func TestMergeSortedOutput(t *testing.T) {
	exec := NewExecutor(0)
	defer exec.Close()

	a := []float64{1, 3, 5, 7, 9}
	b := []float64{2, 4, 6, 8, 10}
	less := func(x, y float64) bool { return x < y }

	out, err := Merge(exec, a, b, less, 3)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(out) != len(a)+len(b) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(a)+len(b))
	}
	for i := 1; i < len(out); i++ {
		if out[i-1] > out[i] {
			t.Fatalf("not sorted at %d: %v > %v", i, out[i-1], out[i])
		}
	}
}

func TestValidateResourcesDetectsAliasing(t *testing.T) {
	buf := make([]float64, 4)
	a := SliceSlot(ResourceReadWrite, buf)
	b := SliceSlot(ResourceReadWrite, buf)
	if err := ValidateResources([]ResourceSlot{a, b}); err == nil {
		t.Fatal("expected aliasing error")
	}
}

func TestDispatchRejectsZeroSize(t *testing.T) {
	exec := NewExecutor(0)
	defer exec.Close()
	err := exec.Dispatch(0, 1, 0, nil, func(ParallelContext) {})
	if err == nil {
		t.Fatal("expected error for zero workgroups")
	}
}
