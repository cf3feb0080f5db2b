package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	_ "embed"

	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/qri-io/jsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(schemaJSON, rs); err != nil {
			schemaErr = fmt.Errorf("compile resume schema: %w", err)
			return
		}
		schema = rs
	})
	return schema, schemaErr
}

// Validate checks a full resume document against the embedded schema before
// it replaces the stored one.
func Validate(ctx context.Context, doc []byte) error {
	rs, err := compiledSchema()
	if err != nil {
		return err
	}

	keyErrs, err := rs.ValidateBytes(ctx, doc)
	if err != nil {
		return apperr.Wrap(apperr.InvalidState, "Resume document is not valid JSON", err)
	}
	if len(keyErrs) > 0 {
		return apperr.E(apperr.InvalidState, fmt.Sprintf("Resume document invalid: %s", keyErrs[0].Error()))
	}

	return nil
}
