package model

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/snapshot.schema.json
var snapshotSchema []byte

var loadSnapshotSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(snapshotSchema))
})

// ValidateSnapshot checks raw JSON against the embedded snapshot schema.
// Non-JSON input is reported as an error as well.
func ValidateSnapshot(raw []byte) error {
	schema, err := loadSnapshotSchema()
	if err != nil {
		return fmt.Errorf("load snapshot schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
