// Package validation checks decoded request bodies against a fixed set of
// named schemas and reports every field failure in declaration order.
package validation

import "fmt"

// Failure is a single field-level validation error.
type Failure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate runs the schema of op against fields. An absent field only reports
// its presence failure; a present field reports every rule it breaks. An empty
// result means the request may proceed.
func Validate(op Operation, fields Fields) []Failure {
	schema, ok := SchemaFor(op)
	if !ok {
		panic(fmt.Sprintf("validation: no schema for operation %d", op))
	}
	return schema.Validate(fields)
}

func (s Schema) Validate(fields Fields) []Failure {
	v := validate()

	var failures []Failure
	for _, field := range s {
		if !fields.present(field.Name) {
			failures = append(failures, Failure{Field: field.Name, Message: field.Required})
			continue
		}
		value := fields[field.Name]
		for _, rule := range field.Rules {
			if !rule.check(v, value) {
				failures = append(failures, Failure{Field: field.Name, Message: rule.Message})
			}
		}
	}
	return failures
}
