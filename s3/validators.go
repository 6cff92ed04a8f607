package s3

import (
	"context"
	"fmt"

	"github.com/objkit/objkit-go"
	"github.com/objkit/objkit-go/middleware"
	"github.com/objkit/objkit-go/middleware/id"
)

// inputValidator is implemented by operation inputs with required members.
type inputValidator interface {
	validate() error
}

type validateInput struct{}

func addValidateInputMiddleware(stack *middleware.Stack) error {
	return stack.Initialize.Add(&validateInput{}, middleware.After)
}

func (*validateInput) ID() string { return id.OperationInputValidation }

func (m *validateInput) HandleInitialize(ctx context.Context, in middleware.InitializeInput, next middleware.InitializeHandler) (
	out middleware.InitializeOutput, metadata middleware.Metadata, err error,
) {
	if in.Parameters == nil {
		return out, metadata, fmt.Errorf("unexpected nil input parameters")
	}
	if v, ok := in.Parameters.(inputValidator); ok {
		if err := v.validate(); err != nil {
			return out, metadata, err
		}
	}
	return next.HandleInitialize(ctx, in)
}

// validateKey reports a missing object key on invalidParams.
func validateKey(invalidParams *objkit.InvalidParamsError, key string) {
	if len(key) == 0 {
		invalidParams.Add(objkit.NewErrParamRequired("Key"))
	}
}

func validationResult(invalidParams *objkit.InvalidParamsError) error {
	if invalidParams.Len() > 0 {
		return invalidParams
	}
	return nil
}
