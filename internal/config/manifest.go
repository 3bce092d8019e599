package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"soyc/internal/ast"
	"soyc/internal/passes"
)

// manifest is the on-disk shape of soyc.toml. Globals are written as raw
// Soy literal source text (e.g. `ENABLE_FOO = "true"`, `MAX_ITEMS = "10"`,
// `APP_NAME = "\"checkout\""`) rather than native TOML types, so a global's
// kind is unambiguous the same way it would be if it were written directly
// in a template: LoadManifest classifies each raw string the same way the
// expression lexer would.
type manifest struct {
	Options
	Globals map[string]string `toml:"globals"`
}

// LoadManifest decodes path as a soyc.toml project manifest, layering its
// values over Defaults().
func LoadManifest(path string) (Options, error) {
	m := manifest{Options: Defaults()}
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Options{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	opts := m.Options
	if len(m.Globals) > 0 {
		opts.Globals = make(map[string]passes.Global, len(m.Globals))
		for name, raw := range m.Globals {
			opts.Globals[name] = classifyGlobal(raw)
		}
	}
	return opts, nil
}

func classifyGlobal(raw string) passes.Global {
	switch {
	case raw == "true" || raw == "false":
		return passes.Global{Kind: ast.LiteralBool, Raw: raw}
	case raw == "null":
		return passes.Global{Kind: ast.LiteralNull, Raw: raw}
	case len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"':
		return passes.Global{Kind: ast.LiteralString, Raw: raw}
	case isFloatLiteral(raw):
		return passes.Global{Kind: ast.LiteralFloat, Raw: raw}
	default:
		return passes.Global{Kind: ast.LiteralInt, Raw: raw}
	}
}

func isFloatLiteral(raw string) bool {
	for _, r := range raw {
		if r == '.' || r == 'e' || r == 'E' {
			return true
		}
	}
	return false
}
