package analyzer

import (
	"math"

	"github.com/apigen/apigen/typepool"
)

// valueRange is the inclusive range of representable values for an integer
// type, grounded on the original analyzer's `struct ValueRange` (analyzer.c,
// get_integer_range / range_is_valid / svalue_in_range / uvalue_in_range).
// min may be negative; max is always tracked as unsigned so an i64's upper
// bound (INT64_MAX) and a u64's upper bound (UINT64_MAX) both fit.
type valueRange struct {
	min int64
	max uint64
}

func (r valueRange) validAndContainsSigned(v int64) bool {
	if v >= 0 {
		return uint64(v) <= r.max
	}
	return v >= r.min
}

func (r valueRange) validAndContainsUnsigned(v uint64) bool {
	if r.min < 0 {
		return v <= r.max
	}
	return v >= uint64(r.min) && v <= r.max
}

// integerRange returns the range of t, and whether that range is known
// (platform-independent). The original implementation stores
// platform-dependent C types (c_short/c_int/c_long/c_longlong and their
// unsigned counterparts) as an explicit (0, 0) sentinel. apigen returns
// their widths under an LP64 model (16-bit short, 32-bit int, 64-bit
// long/long long) but still reports them as not known; the enum and
// constexpr analyses skip the range check for such types and emit
// warning_enum_int_undefined or warning_constexpr_unchecked instead.
func integerRange(t *typepool.Type) (r valueRange, known bool) {
	switch t.Kind {
	case typepool.KindU8:
		return valueRange{0, math.MaxUint8}, true
	case typepool.KindU16:
		return valueRange{0, math.MaxUint16}, true
	case typepool.KindU32:
		return valueRange{0, math.MaxUint32}, true
	case typepool.KindU64, typepool.KindUsize:
		return valueRange{0, math.MaxUint64}, true
	case typepool.KindI8:
		return valueRange{math.MinInt8, math.MaxInt8}, true
	case typepool.KindI16:
		return valueRange{math.MinInt16, math.MaxInt16}, true
	case typepool.KindI32:
		return valueRange{math.MinInt32, math.MaxInt32}, true
	case typepool.KindI64, typepool.KindIsize:
		return valueRange{math.MinInt64, math.MaxInt64}, true

	// Platform-dependent: LP64 widths, reported as not known, so callers
	// warn (spec.md §4.3.3 step 1) and skip the range check.
	case typepool.KindCShort:
		return valueRange{math.MinInt16, math.MaxInt16}, false
	case typepool.KindCUshort:
		return valueRange{0, math.MaxUint16}, false
	case typepool.KindCInt:
		return valueRange{math.MinInt32, math.MaxInt32}, false
	case typepool.KindCUint:
		return valueRange{0, math.MaxUint32}, false
	case typepool.KindCLong, typepool.KindCLonglong:
		return valueRange{math.MinInt64, math.MaxInt64}, false
	case typepool.KindCUlong, typepool.KindCUlonglong:
		return valueRange{0, math.MaxUint64}, false

	default:
		return valueRange{}, false
	}
}
