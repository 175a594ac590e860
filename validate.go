package dagcheck

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// pipelineValidate checks request structure before classification.
var pipelineValidate *validator.Validate

func init() {
	pipelineValidate = validator.New(validator.WithRequiredStructEnabled())
	pipelineValidate.RegisterTagNameFunc(jsonFieldName)
}

// jsonFieldName reports fields by their JSON name so errors match the wire format.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Validate checks that both arrays are present and that every node and edge
// carries its identifier keys. Empty strings are accepted. It does not check
// graph consistency; that is Classify's job.
//
// A failure is returned as *ValidationError.
func (r *PipelineRequest) Validate() error {
	err := pipelineValidate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fieldPath(fe.Namespace()), Rule: fe.Tag()})
	}
	return &ValidationError{Fields: fields}
}

// fieldPath drops the root struct name: "PipelineRequest.nodes[0].id" -> "nodes[0].id".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
