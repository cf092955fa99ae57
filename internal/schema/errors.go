package schema

import (
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"inspection-back/internal/errs"
)

// NonFieldErrors collects failures not attributable to a single field.
const NonFieldErrors = "non_field_errors"

// ValidationError carries per-field messages. It matches errs.ErrValidation.
type ValidationError struct {
	Fields map[string][]string
}

// Invalid returns a ValidationError with one message for field.
func Invalid(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, msg)
	return e
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == errs.ErrValidation }

func fromResult(result *gojsonschema.Result) *ValidationError {
	verr := &ValidationError{}
	for _, re := range result.Errors() {
		field := re.Field()
		if re.Type() == "required" {
			if property, ok := re.Details()["property"].(string); ok {
				field = joinField(field, property)
			}
		}
		if field == gojsonschema.STRING_CONTEXT_ROOT {
			field = NonFieldErrors
		}
		verr.Add(field, re.Description())
	}
	return verr
}

func joinField(parent, child string) string {
	if parent == gojsonschema.STRING_CONTEXT_ROOT || parent == "" {
		return child
	}
	return parent + "." + child
}
