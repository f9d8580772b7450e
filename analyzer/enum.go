package analyzer

import (
	"github.com/apigen/apigen/ast"
	"github.com/apigen/apigen/diag"
	"github.com/apigen/apigen/typepool"
)

// analyzeEnum fills in ty.Enum from t's underlying type and item list, per
// spec.md §4.3.3. Grounded closely on analyze_enum_type in the original
// analyzer.c, including its running current_value/value_is_signed state
// and its auto-width deduction from the observed min/max.
func (r *resolver) analyzeEnum(ty *typepool.Type, t *ast.Type, prefix string) error {
	var underlying *typepool.Type
	var intRange valueRange
	var rangeKnown bool

	if t.UnderlyingInt != nil {
		u, err := r.resolveType(t.UnderlyingInt, prefix)
		if err != nil {
			return err
		}
		if u.Kind.Integer() {
			underlying = u
			intRange, rangeKnown = integerRange(u)
			if !rangeKnown {
				r.warnf(t.UnderlyingInt.Span, diag.EnumIntUndefined, "enum backing type %q has a platform-dependent range", u.Name)
			}
		} else {
			r.errf(t.UnderlyingInt.Span, diag.EnumTypeMustBeInt, "enum underlying type must be an integer type")
			// Fall through to auto-deduction so more errors can surface.
		}
	}

	if len(t.Items) == 0 {
		r.errf(t.Span, diag.EnumEmpty, "enum has no items")
		return genericFailure()
	}

	items := make([]typepool.EnumItem, 0, len(t.Items))
	seenNames := make(map[string]bool, len(t.Items))

	var ival int64
	var uval uint64
	signed := underlying != nil && !unsignedInteger(underlying.Kind)

	var actualMin int64 = 1<<63 - 1
	var actualMax uint64

	for _, it := range t.Items {
		if seenNames[it.Name] {
			r.errf(it.Span, diag.DuplicateEnumItem, "duplicate enum item %q", it.Name)
		}
		seenNames[it.Name] = true

		skipRangeCheck := false
		if it.Value != nil {
			switch it.Value.Kind {
			case ast.ValueNull:
				// keep current value unchanged

			case ast.ValueStr:
				r.errf(it.Span, diag.EnumValueIllegal, "enum item %q assigned a non-integer value", it.Name)

			case ast.ValueSint:
				if underlying != nil && !signed {
					r.errf(it.Span, diag.EnumOutOfRange, "value %d out of range for item %q", it.Value.Sint, it.Name)
					skipRangeCheck = true
				} else {
					signed = true
					ival = it.Value.Sint
				}

			case ast.ValueUint:
				if signed {
					if it.Value.Uint > uint64(1<<63-1) {
						r.errf(it.Span, diag.EnumOutOfRange, "value %d out of range for item %q", it.Value.Uint, it.Name)
						skipRangeCheck = true
					} else {
						ival = int64(it.Value.Uint)
					}
				} else {
					uval = it.Value.Uint
				}
			}
		}

		if !skipRangeCheck && rangeKnown {
			if signed {
				if !intRange.validAndContainsSigned(ival) {
					r.errf(it.Span, diag.EnumOutOfRange, "value %d out of range for item %q", ival, it.Name)
				}
			} else if !intRange.validAndContainsUnsigned(uval) {
				r.errf(it.Span, diag.EnumOutOfRange, "value %d out of range for item %q", uval, it.Name)
			}
		}

		bits := uval
		if signed {
			bits = uint64(ival)
		}
		for _, prev := range items {
			if prev.Value.Bits == bits {
				r.errf(it.Span, diag.DuplicateEnumValue, "item %q shares a value with %q", it.Name, prev.Name)
				break
			}
		}

		items = append(items, typepool.EnumItem{
			Doc:   it.Doc,
			Name:  it.Name,
			Value: typepool.EnumValue{Signed: signed, Bits: bits},
		})

		if signed {
			if ival < actualMin {
				actualMin = ival
			}
			if ival > 0 && uint64(ival) > actualMax {
				actualMax = uint64(ival)
			}
			ival++
		} else {
			if int64(0) < actualMin {
				actualMin = 0
			}
			if uval > actualMax {
				actualMax = uval
			}
			uval++
		}
	}

	if underlying == nil {
		underlying = autoWidth(actualMin, actualMax)
	}

	ty.Enum = &typepool.EnumExtra{Underlying: underlying, Items: items}
	return nil
}

func unsignedInteger(k typepool.Kind) bool {
	switch k {
	case typepool.KindU8, typepool.KindU16, typepool.KindU32, typepool.KindU64, typepool.KindUsize,
		typepool.KindCUshort, typepool.KindCUint, typepool.KindCUlong, typepool.KindCUlonglong:
		return true
	default:
		return false
	}
}

// autoWidth picks the narrowest integer primitive whose range contains
// [min, max], per spec.md §4.3.3 step 3.
func autoWidth(min int64, max uint64) *typepool.Type {
	if min < 0 {
		switch {
		case min >= -(1<<7) && max <= 1<<7-1:
			return typepool.I8
		case min >= -(1<<15) && max <= 1<<15-1:
			return typepool.I16
		case min >= -(1<<31) && max <= 1<<31-1:
			return typepool.I32
		default:
			return typepool.I64
		}
	}
	switch {
	case max <= 1<<8-1:
		return typepool.U8
	case max <= 1<<16-1:
		return typepool.U16
	case max <= 1<<32-1:
		return typepool.U32
	default:
		return typepool.U64
	}
}
