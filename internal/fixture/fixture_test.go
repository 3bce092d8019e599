package fixture

import (
	"testing"

	"soyc/internal/ast"
	"soyc/internal/idgen"
)

func TestLoadDefaultsFileKindToSrc(t *testing.T) {
	gen := idgen.NewSequential()
	f, err := Load(gen, []byte(`{"path":"a.soy","namespace":"ns","templates":[]}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if f.FileKind != ast.FileKindSrc {
		t.Fatalf("FileKind = %v, want %v", f.FileKind, ast.FileKindSrc)
	}
}

func TestLoadReadsFileKind(t *testing.T) {
	tests := []struct {
		json string
		want ast.FileKind
	}{
		{`{"path":"a.soy","namespace":"ns","kind":"src","templates":[]}`, ast.FileKindSrc},
		{`{"path":"a.soy","namespace":"ns","kind":"dep","templates":[]}`, ast.FileKindDep},
		{`{"path":"a.soy","namespace":"ns","kind":"indirect_dep","templates":[]}`, ast.FileKindIndirectDep},
	}
	gen := idgen.NewSequential()
	for _, tc := range tests {
		f, err := Load(gen, []byte(tc.json))
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", tc.json, err)
		}
		if f.FileKind != tc.want {
			t.Fatalf("Load(%q).FileKind = %v, want %v", tc.json, f.FileKind, tc.want)
		}
	}
}
