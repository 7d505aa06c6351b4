package prefabs

import (
	"strings"
	"unicode"

	"github.com/invopop/jsonschema"
)

// Schema reflects a JSON schema for a prefab type. Property names follow the
// yaml keys and nothing is required, since every unset field has a default.
func Schema(v any, title string) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
		KeyNamer:                   snakeCase,
	}
	schema := reflector.Reflect(v)
	schema.Title = title
	return schema
}

// Schemas returns the schema of every prefab file, keyed by file name.
func Schemas() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		EnemyFile:  Schema(new(EnemySpec), "Enemy prefab"),
		PlayerFile: Schema(new(PlayerSpec), "Player prefab"),
	}
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
