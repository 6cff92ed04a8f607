package objkit

import (
	"bytes"
	"fmt"
	"strings"
)

// An InvalidParamsError provides wrapping of invalid parameter errors found
// when validating API operation input parameters.
type InvalidParamsError struct {
	// Context is the base context of the invalid parameter group.
	Context string
	errs    []InvalidParamError
}

// Add adds a new invalid parameter error to the collection of invalid
// parameters. The context of the invalid parameter will be updated to
// reflect this collection.
func (e *InvalidParamsError) Add(err InvalidParamError) {
	err.SetContext(e.Context)
	e.errs = append(e.errs, err)
}

// Len returns the number of invalid parameter errors
func (e *InvalidParamsError) Len() int {
	return len(e.errs)
}

// Error returns the string formatted form of the invalid parameters.
func (e *InvalidParamsError) Error() string {
	w := &bytes.Buffer{}
	fmt.Fprintf(w, "%d validation error(s) found.\n", len(e.errs))

	for _, err := range e.errs {
		fmt.Fprintf(w, "- %s\n", err.Error())
	}

	return w.String()
}

// Errs returns a slice of the invalid parameters
func (e *InvalidParamsError) Errs() []error {
	errs := make([]error, len(e.errs))
	for i := 0; i < len(errs); i++ {
		errs[i] = e.errs[i]
	}

	return errs
}

// An InvalidParamError represents an invalid parameter error type.
type InvalidParamError interface {
	error

	// Field name the error occurred on.
	Field() string

	// SetContext updates the context of the error.
	SetContext(string)
}

type invalidParamError struct {
	context string
	field   string
	reason  string
}

// Error returns the string version of the invalid parameter error.
func (e invalidParamError) Error() string {
	return fmt.Sprintf("%s, %s.", e.reason, e.Field())
}

// Field Returns the field and context the error occurred.
func (e invalidParamError) Field() string {
	sb := &strings.Builder{}
	sb.WriteString(e.context)
	if sb.Len() > 0 {
		sb.WriteRune('.')
	}
	sb.WriteString(e.field)
	return sb.String()
}

// SetContext updates the base context of the error.
func (e *invalidParamError) SetContext(ctx string) {
	e.context = ctx
}

// A ParamRequiredError represents an required parameter error.
type ParamRequiredError struct {
	invalidParamError
}

// NewErrParamRequired creates a new required parameter error.
func NewErrParamRequired(field string) *ParamRequiredError {
	return &ParamRequiredError{
		invalidParamError{
			field:  field,
			reason: "missing required field",
		},
	}
}

// A ParamValueError represents a parameter holding a value the operation
// cannot accept.
type ParamValueError struct {
	invalidParamError
}

// NewErrParamValue creates a new invalid value parameter error.
func NewErrParamValue(field, reason string) *ParamValueError {
	return &ParamValueError{
		invalidParamError{
			field:  field,
			reason: reason,
		},
	}
}
