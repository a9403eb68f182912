package dashboard

import (
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestSumByKey_MergesTwoRecordSets(t *testing.T) {
	grain := []ProductAmount{
		{Product: "soybean", Quantity: fptr(100)},
		{Product: "corn", Quantity: fptr(40)},
	}
	seed := []ProductAmount{
		{Product: "soybean", Quantity: fptr(50)},
	}

	acc := sumProductAmounts(nil, grain)
	acc = sumProductAmounts(acc, seed)

	if got := acc["soybean"]; got != 150 {
		t.Errorf("soybean total: want 150, got %v", got)
	}
	if got := acc["corn"]; got != 40 {
		t.Errorf("corn total: want 40, got %v", got)
	}
	if len(acc) != 2 {
		t.Errorf("expected 2 products, got %d", len(acc))
	}
}

func TestSumByKey_NilValueRegistersKey(t *testing.T) {
	rows := []ProductAmount{
		{Product: "wheat", Quantity: nil},
	}

	acc := sumProductAmounts(nil, rows)

	got, ok := acc["wheat"]
	if !ok {
		t.Fatal("nil-quantity record must still register its key")
	}
	if got != 0 {
		t.Errorf("nil quantity must contribute zero, got %v", got)
	}
}

func TestSumByKey_NilAccumulatorAllocated(t *testing.T) {
	acc := SumByKey(nil, []ProductAmount{},
		func(r ProductAmount) string { return r.Product },
		func(r ProductAmount) *float64 { return r.Quantity },
	)
	if acc == nil {
		t.Fatal("expected allocated accumulator")
	}
}

func TestSumByKey_PartitionAdditivity(t *testing.T) {
	all := []ProductAmount{
		{Product: "soybean", Quantity: fptr(10)},
		{Product: "soybean", Quantity: fptr(20)},
		{Product: "corn", Quantity: fptr(5)},
		{Product: "corn", Quantity: fptr(15)},
	}

	// Summing a set must equal summing any partition of it.
	whole := sumProductAmounts(nil, all)
	parts := sumProductAmounts(nil, all[:2])
	parts = sumProductAmounts(parts, all[2:])

	for product, want := range whole {
		if got := parts[product]; got != want {
			t.Errorf("%s: partitioned sum %v != whole sum %v", product, got, want)
		}
	}
}
