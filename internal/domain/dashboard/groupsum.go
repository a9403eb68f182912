package dashboard

import "agroplan/internal/core/id"

// SumByKey folds records into the accumulator, adding value(record)
// under key(record). A nil value contributes zero but still registers
// the key, so no record is silently dropped. A nil accumulator is
// allocated; the accumulator is returned so two record sets can be
// folded into one map (the pipeline-merge case).
func SumByKey[T any, K comparable](acc map[K]float64, records []T, key func(T) K, value func(T) *float64) map[K]float64 {
	if acc == nil {
		acc = make(map[K]float64, len(records))
	}
	for _, rec := range records {
		k := key(rec)
		acc[k] += orZero(value(rec))
	}
	return acc
}

// orZero dereferences a nullable quantity, treating absent as zero.
func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// sumProductAmounts folds grouped-sum rows into acc keyed by product.
func sumProductAmounts(acc map[string]float64, rows []ProductAmount) map[string]float64 {
	return SumByKey(acc, rows,
		func(r ProductAmount) string { return r.Product },
		func(r ProductAmount) *float64 { return r.Quantity },
	)
}

// sumMachineAmounts folds grouped-sum rows into acc keyed by machine id.
func sumMachineAmounts(acc map[id.ID]float64, rows []MachineAmount) map[id.ID]float64 {
	return SumByKey(acc, rows,
		func(r MachineAmount) id.ID { return r.MachineID },
		func(r MachineAmount) *float64 { return r.Amount },
	)
}
