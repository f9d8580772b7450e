package analyzer

import (
	"github.com/apigen/apigen/ast"
	"github.com/apigen/apigen/diag"
	"github.com/apigen/apigen/typepool"
)

// analyzeStructOrUnion fills in ty.Fields from t's source fields, per
// spec.md §4.3.2.
func (r *resolver) analyzeStructOrUnion(ty *typepool.Type, t *ast.Type, prefix string) error {
	fields := make([]typepool.Field, 0, len(t.Fields))
	seen := make(map[string]bool, len(t.Fields))

	for _, f := range t.Fields {
		fty, err := r.resolveType(f.Type, prefix+"_"+f.Name)
		if err != nil {
			return err
		}
		if seen[f.Name] {
			r.errf(f.Span, diag.DuplicateField, "duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		fields = append(fields, typepool.Field{Doc: f.Doc, Name: f.Name, Type: fty})
	}

	if len(fields) == 0 {
		r.warnf(t.Span, diag.StructEmpty, "empty struct or union")
	}

	ty.Fields = &typepool.FieldsExtra{Fields: fields}
	return nil
}
