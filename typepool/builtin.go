package typepool

// Primitive type singletons. Exactly one *Type value exists for each
// primitive kind, matching spec.md §3.2 invariant 3 ("primitive types are
// singletons, identified only by kind") and apigen_lookup_type's dispatch
// in the original type-pool.c.
var (
	Void        = &Type{Kind: KindVoid, Name: "void"}
	Anyopaque   = &Type{Kind: KindAnyopaque, Name: "anyopaque"}
	Bool        = &Type{Kind: KindBool, Name: "bool"}
	Uchar       = &Type{Kind: KindUchar, Name: "uchar"}
	Ichar       = &Type{Kind: KindIchar, Name: "ichar"}
	Char        = &Type{Kind: KindChar, Name: "char"}
	U8          = &Type{Kind: KindU8, Name: "u8"}
	U16         = &Type{Kind: KindU16, Name: "u16"}
	U32         = &Type{Kind: KindU32, Name: "u32"}
	U64         = &Type{Kind: KindU64, Name: "u64"}
	Usize       = &Type{Kind: KindUsize, Name: "usize"}
	CUshort     = &Type{Kind: KindCUshort, Name: "c_ushort"}
	CUint       = &Type{Kind: KindCUint, Name: "c_uint"}
	CUlong      = &Type{Kind: KindCUlong, Name: "c_ulong"}
	CUlonglong  = &Type{Kind: KindCUlonglong, Name: "c_ulonglong"}
	I8          = &Type{Kind: KindI8, Name: "i8"}
	I16         = &Type{Kind: KindI16, Name: "i16"}
	I32         = &Type{Kind: KindI32, Name: "i32"}
	I64         = &Type{Kind: KindI64, Name: "i64"}
	Isize       = &Type{Kind: KindIsize, Name: "isize"}
	CShort      = &Type{Kind: KindCShort, Name: "c_short"}
	CInt        = &Type{Kind: KindCInt, Name: "c_int"}
	CLong       = &Type{Kind: KindCLong, Name: "c_long"}
	CLonglong   = &Type{Kind: KindCLonglong, Name: "c_longlong"}
	F32         = &Type{Kind: KindF32, Name: "f32"}
	F64         = &Type{Kind: KindF64, Name: "f64"}
)

// builtins maps every source spelling that resolves directly to a
// primitive singleton, without going through a user declaration.
//
// c_uchar, c_ichar and c_char are aliases onto uchar/ichar/char: the
// original apigen_lookup_type recognizes both spellings so that generated
// C code and hand-written IDL can use whichever reads better at a call
// site, while the pool itself only ever hands out the one canonical
// *Type (spec.md §4, "Supplemented features").
var builtins = map[string]*Type{
	"void":         Void,
	"anyopaque":    Anyopaque,
	"bool":         Bool,
	"uchar":        Uchar,
	"ichar":        Ichar,
	"char":         Char,
	"c_uchar":      Uchar,
	"c_ichar":      Ichar,
	"c_char":       Char,
	"u8":           U8,
	"u16":          U16,
	"u32":          U32,
	"u64":          U64,
	"usize":        Usize,
	"c_ushort":     CUshort,
	"c_uint":       CUint,
	"c_ulong":      CUlong,
	"c_ulonglong":  CUlonglong,
	"i8":           I8,
	"i16":          I16,
	"i32":          I32,
	"i64":          I64,
	"isize":        Isize,
	"c_short":      CShort,
	"c_int":        CInt,
	"c_long":       CLong,
	"c_longlong":   CLonglong,
	"f32":          F32,
	"f64":          F64,
}

// Builtin looks up name among the statically-known primitive spellings,
// including the c_uchar/c_ichar/c_char source aliases. It never consults a
// Pool, since primitives exist independently of any particular compile.
func Builtin(name string) (*Type, bool) {
	t, ok := builtins[name]
	return t, ok
}
