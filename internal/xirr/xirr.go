// Package xirr computes the extended internal rate of return for a series of
// dated cash flows: the annualized rate at which the series' net present value
// is zero. The package is pure computation. It performs no I/O, holds no state,
// and is safe for concurrent use as long as each caller passes its own slice.
package xirr

import (
	"errors"
	"math"
	"slices"
	"time"
)

// CashFlow is a single dated monetary flow. Outflows (purchases, contributions)
// are negative; inflows (sale proceeds, a holding's current value treated as a
// hypothetical liquidation) are positive.
type CashFlow struct {
	Date   time.Time
	Amount float64
}

// Calculation errors. All of them are recoverable at the reporting layer: the
// affected security or portfolio renders its return as unavailable and the
// report continues.
var (
	// ErrInsufficientData indicates fewer than two usable flows, or flows that
	// span zero days. The rate is undefined before any solving is attempted.
	ErrInsufficientData = errors.New("insufficient cash flow data")

	// ErrNoRoot indicates all flows carry the same sign. Net present value is
	// then monotonic in the rate and no zero crossing exists.
	ErrNoRoot = errors.New("cash flows have no sign change")

	// ErrNoConvergence indicates the solver could not bracket a root or
	// exhausted its iteration budget.
	ErrNoConvergence = errors.New("rate calculation did not converge")

	// ErrInvalidTransactionSequence indicates a sell exceeding the cumulative
	// buys before it, which points at corrupt upstream data.
	ErrInvalidTransactionSequence = errors.New("sell exceeds cumulative prior buys")
)

const (
	// daysPerYear is the day-count basis for annualization.
	daysPerYear = 365.0

	// npvTolerance is the convergence threshold on |NPV(rate)|.
	npvTolerance = 1e-6

	// rateTolerance is the convergence threshold on the bisection bracket width.
	rateTolerance = 1e-9

	// maxIterations bounds the bisection loop. Termination is guaranteed
	// regardless of input; no timeout or cancellation is needed.
	maxIterations = 100

	// bracketFloor is the lower rate bound, just above total loss (rate = -1),
	// where the discounting factor becomes singular.
	bracketFloor = -0.9999

	// bracketSeed is the initial upper rate bound. It is doubled until the NPV
	// changes sign, so legitimate high-return short-duration series are not
	// rejected by an arbitrary ceiling.
	bracketSeed = 10.0

	// bracketCeiling caps bracket expansion at a 100,000,000% annual rate.
	bracketCeiling = 1e6
)

// NetPresentValue discounts the flows at the given annualized rate and returns
// their sum. Flows must be ordered by date ascending: the first flow's date is
// the discounting epoch, so it always contributes its amount unscaled.
func NetPresentValue(flows []CashFlow, rate float64) float64 {
	if len(flows) == 0 {
		return 0
	}

	epoch := flows[0].Date
	npv := 0.0
	for _, f := range flows {
		years := f.Date.Sub(epoch).Hours() / 24 / daysPerYear
		npv += f.Amount / math.Pow(1+rate, years)
	}
	return npv
}

// Compute solves for the annualized rate at which the net present value of the
// flows is zero. The result is a fractional annual rate (0.153 means 15.3% per
// year); formatting is the caller's concern.
//
// The input is not mutated. Flows are copied, sorted by date ascending, and
// zero-amount entries are dropped before validation so that a spurious empty
// flow cannot satisfy or corrupt the sign-balance precondition.
//
// Preconditions, checked in order:
//   - at least two non-zero flows spanning more than zero days, or
//     ErrInsufficientData
//   - at least one negative and one positive amount, or ErrNoRoot
//
// The solver brackets the root between bracketFloor and an expanding upper
// bound, then bisects. Bisection converges unconditionally within the bracket,
// which keeps the search stable near the rate = -1 singularity where a
// Newton-style iteration can diverge. ErrNoConvergence is returned if no sign
// change is found during expansion or the iteration budget runs out.
func Compute(flows []CashFlow) (float64, error) {
	series := make([]CashFlow, 0, len(flows))
	for _, f := range flows {
		if f.Amount != 0 {
			series = append(series, f)
		}
	}
	slices.SortStableFunc(series, func(a, b CashFlow) int {
		return a.Date.Compare(b.Date)
	})

	if len(series) < 2 {
		return 0, ErrInsufficientData
	}
	if !series[len(series)-1].Date.After(series[0].Date) {
		return 0, ErrInsufficientData
	}

	hasNegative := false
	hasPositive := false
	for _, f := range series {
		if f.Amount < 0 {
			hasNegative = true
		} else {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return 0, ErrNoRoot
	}

	low, high := bracketFloor, bracketSeed
	npvLow := NetPresentValue(series, low)
	npvHigh := NetPresentValue(series, high)

	if math.Abs(npvLow) <= npvTolerance {
		return low, nil
	}

	// Expand the upper bound until the NPV changes sign across the bracket.
	for npvLow*npvHigh > 0 {
		high *= 2
		if high > bracketCeiling {
			return 0, ErrNoConvergence
		}
		npvHigh = NetPresentValue(series, high)
	}

	for i := 0; i < maxIterations; i++ {
		mid := (low + high) / 2
		npvMid := NetPresentValue(series, mid)

		if math.Abs(npvMid) <= npvTolerance || high-low < rateTolerance {
			return mid, nil
		}

		if npvLow*npvMid < 0 {
			high = mid
		} else {
			low = mid
			npvLow = npvMid
		}
	}

	return 0, ErrNoConvergence
}
