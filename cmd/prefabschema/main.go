// Command prefabschema writes JSON schemas for the prefab YAML files so
// editors can validate and complete them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Shiru-Kage/BerserkSigilofRuin/prefabs"
	"github.com/invopop/jsonschema"
)

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the schemas into")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schemas := prefabs.Schemas()
	files := make([]string, 0, len(schemas))
	for file := range schemas {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		outPath := filepath.Join(outDir, strings.TrimSuffix(file, filepath.Ext(file))+".schema.json")
		if err := writeSchema(outPath, schemas[file]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", outPath, err)
			os.Exit(1)
		}
		fmt.Println(outPath)
	}
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
