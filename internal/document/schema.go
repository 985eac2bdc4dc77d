package document

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// workflowSchema only demands the document-level fields. Nodes and edges are
// checked by the typed decode, never by the schema.
const workflowSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "nodes", "edges"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "nodes": {"type": "array"},
    "edges": {"type": "array"}
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("workflow.schema.json", workflowSchema)
	})
	return schema, schemaErr
}

// checkShape validates the decoded document tree against the minimal shape.
func checkShape(v any) error {
	s, err := loadSchema()
	if err != nil {
		return err
	}
	return s.Validate(v)
}
