package form

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/erazemk/cargotrack/internal/model"
)

// Schema reflects the JSON schema of a record type. Required fields are the
// ones tagged `jsonschema:"required"`.
func Schema(v any) *jsonschema.Schema {
	r := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
	}
	return r.Reflect(v)
}

// Validator checks required fields against a reflected schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator reflects v once and returns a validator for its type.
func NewValidator(v any) *Validator {
	return &Validator{schema: Schema(v)}
}

// Schema returns the reflected schema.
func (v *Validator) Schema() *jsonschema.Schema { return v.schema }

// Required returns the names of the required fields.
func (v *Validator) Required() []string { return v.schema.Required }

// Validate returns a *model.ValidationError naming every required field of
// rec that is empty or blank.
func (v *Validator) Validate(rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}

	var missing, invalid []string
	for _, name := range v.schema.Required {
		switch val := fields[name].(type) {
		case nil:
			missing = append(missing, name)
		case string:
			if strings.TrimSpace(val) == "" {
				missing = append(missing, name)
			}
		}
	}
	for pair := v.schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		s, ok := fields[pair.Key].(string)
		if !ok || s == "" || len(pair.Value.Enum) == 0 {
			continue
		}
		if !inEnum(pair.Value.Enum, s) {
			invalid = append(invalid, pair.Key)
		}
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return &model.ValidationError{Fields: missing, Invalid: invalid}
	}
	return nil
}

func inEnum(enum []any, s string) bool {
	for _, e := range enum {
		if e == s {
			return true
		}
	}
	return false
}
