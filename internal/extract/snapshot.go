package extract

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/textutil"
)

//go:embed snapshot_schema.json
var snapshotSchemaJSON string

var snapshotSchema = func() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("snapshot_schema.json", strings.NewReader(snapshotSchemaJSON)); err != nil {
		panic(err)
	}
	return c.MustCompile("snapshot_schema.json")
}()

// MarshalSnapshot serializes a document extract, checking it against the
// snapshot schema first so a malformed extract never reaches disk or a
// downstream consumer.
func MarshalSnapshot(ex *entity.DocumentExtract) ([]byte, error) {
	data, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("reparse snapshot: %w", err)
	}
	if err := snapshotSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("snapshot schema: %w", err)
	}
	return data, nil
}

// WriteSnapshot writes the document's snapshot JSON into dir, named after
// the well when one was found and the source document otherwise. Returns the
// written path.
func WriteSnapshot(dir string, ex *entity.DocumentExtract) (string, error) {
	data, err := MarshalSnapshot(ex)
	if err != nil {
		return "", err
	}

	name := ex.Well.WellName
	if name == "" {
		name = strings.TrimSuffix(ex.SourceDocument, filepath.Ext(ex.SourceDocument))
	}
	path := filepath.Join(dir, textutil.SanitizeFilename(name)+".json")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
