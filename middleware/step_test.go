package middleware

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mockInitializeMiddleware(id string) InitializeMiddleware {
	return InitializeMiddlewareFunc(id,
		func(ctx context.Context, in InitializeInput, next InitializeHandler) (
			out InitializeOutput, metadata Metadata, err error,
		) {
			return next.HandleInitialize(ctx, in)
		})
}

func expectIDList(t *testing.T, expect, actual []string) {
	t.Helper()
	if diff := cmp.Diff(expect, actual); diff != "" {
		t.Errorf("expect id list match\n%s", diff)
	}
}

func TestInitializeStep_Get(t *testing.T) {
	step := NewInitializeStep()
	noError(t, step.Add(mockInitializeMiddleware("A"), After))
	noError(t, step.Add(mockInitializeMiddleware("B"), After))

	got, ok := step.Get("A")
	if !ok || got.ID() != "A" {
		t.Errorf("expect A, got %v", got)
	}
	if _, ok := step.Get("NOT REAL"); ok {
		t.Errorf("expect unknown middleware to not be found")
	}

	step = NewInitializeStep()
	if _, ok := step.Get("A"); ok {
		t.Errorf("expect empty step to have no middleware")
	}
}

func TestInitializeStep_Insert(t *testing.T) {
	step := NewInitializeStep()
	noError(t, step.Add(mockInitializeMiddleware("A"), After))
	noError(t, step.Add(mockInitializeMiddleware("B"), After))
	noError(t, step.Add(mockInitializeMiddleware("C"), After))

	noError(t, step.Insert(mockInitializeMiddleware("D"), "A", Before))
	expectIDList(t, []string{"D", "A", "B", "C"}, step.List())

	noError(t, step.Insert(mockInitializeMiddleware("E"), "C", After))
	expectIDList(t, []string{"D", "A", "B", "C", "E"}, step.List())

	noError(t, step.Insert(mockInitializeMiddleware("F"), "B", Before))
	expectIDList(t, []string{"D", "A", "F", "B", "C", "E"}, step.List())

	if err := step.Insert(mockInitializeMiddleware("H"), "FALSE", Before); err == nil {
		t.Error("expect err, got none")
	}
}

func TestInitializeStep_SwapRemoveClear(t *testing.T) {
	step := NewInitializeStep()
	noError(t, step.Add(mockInitializeMiddleware("A"), After))
	noError(t, step.Add(mockInitializeMiddleware("B"), After))
	noError(t, step.Add(mockInitializeMiddleware("C"), After))

	swapped, err := step.Swap("B", mockInitializeMiddleware("D"))
	noError(t, err)
	if e, a := "B", swapped.ID(); e != a {
		t.Errorf("expect %v swapped, got %v", e, a)
	}
	expectIDList(t, []string{"A", "D", "C"}, step.List())

	removed, err := step.Remove("A")
	noError(t, err)
	if e, a := "A", removed.ID(); e != a {
		t.Errorf("expect %v removed, got %v", e, a)
	}
	expectIDList(t, []string{"D", "C"}, step.List())

	if _, err := step.Remove("A"); err == nil {
		t.Errorf("expect error removing missing middleware")
	}

	step.Clear()
	expectIDList(t, nil, step.List())
}

func TestSerializeStep_NewRequest(t *testing.T) {
	type request struct{ Path string }

	step := NewSerializeStep(func() interface{} { return &request{} })
	noError(t, step.Add(SerializeMiddlewareFunc("setPath",
		func(ctx context.Context, in SerializeInput, next SerializeHandler) (
			out SerializeOutput, metadata Metadata, err error,
		) {
			in.Request.(*request).Path = "/" + in.Parameters.(string)
			return next.HandleSerialize(ctx, in)
		}), After))

	var got *request
	_, _, err := step.HandleMiddleware(context.Background(), "bucket",
		HandlerFunc(func(ctx context.Context, input interface{}) (interface{}, Metadata, error) {
			got = input.(*request)
			return nil, Metadata{}, nil
		}))
	noError(t, err)

	if got == nil {
		t.Fatalf("expect request to be passed to handler")
	}
	if e, a := "/bucket", got.Path; e != a {
		t.Errorf("expect %v path, got %v", e, a)
	}
}

func TestDeserializeStep_RawResponse(t *testing.T) {
	step := NewDeserializeStep()
	noError(t, step.Add(DeserializeMiddlewareFunc("wrap",
		func(ctx context.Context, in DeserializeInput, next DeserializeHandler) (
			out DeserializeOutput, metadata Metadata, err error,
		) {
			out, metadata, err = next.HandleDeserialize(ctx, in)
			if err != nil {
				return out, metadata, err
			}
			out.Result = "decoded " + out.RawResponse.(string)
			return out, metadata, nil
		}), After))

	res, _, err := step.HandleMiddleware(context.Background(), "request",
		HandlerFunc(func(ctx context.Context, input interface{}) (interface{}, Metadata, error) {
			return "raw", Metadata{}, nil
		}))
	noError(t, err)

	if e, a := "decoded raw", res; e != a {
		t.Errorf("expect %v result, got %v", e, a)
	}
}

func TestStackOrder(t *testing.T) {
	var order []string
	track := func(name string) {
		order = append(order, name)
	}

	stack := NewStack("test stack", func() interface{} { return struct{}{} })
	noError(t, stack.Initialize.Add(InitializeMiddlewareFunc("init",
		func(ctx context.Context, in InitializeInput, next InitializeHandler) (InitializeOutput, Metadata, error) {
			track("init")
			return next.HandleInitialize(ctx, in)
		}), After))
	noError(t, stack.Serialize.Add(SerializeMiddlewareFunc("serialize",
		func(ctx context.Context, in SerializeInput, next SerializeHandler) (SerializeOutput, Metadata, error) {
			track("serialize")
			return next.HandleSerialize(ctx, in)
		}), After))
	noError(t, stack.Build.Add(BuildMiddlewareFunc("build",
		func(ctx context.Context, in BuildInput, next BuildHandler) (BuildOutput, Metadata, error) {
			track("build")
			return next.HandleBuild(ctx, in)
		}), After))
	noError(t, stack.Finalize.Add(FinalizeMiddlewareFunc("finalize",
		func(ctx context.Context, in FinalizeInput, next FinalizeHandler) (FinalizeOutput, Metadata, error) {
			track("finalize")
			return next.HandleFinalize(ctx, in)
		}), After))
	noError(t, stack.Deserialize.Add(DeserializeMiddlewareFunc("deserialize",
		func(ctx context.Context, in DeserializeInput, next DeserializeHandler) (DeserializeOutput, Metadata, error) {
			track("deserialize")
			out, metadata, err := next.HandleDeserialize(ctx, in)
			out.Result = out.RawResponse
			return out, metadata, err
		}), After))

	h := DecorateHandler(HandlerFunc(func(ctx context.Context, input interface{}) (interface{}, Metadata, error) {
		track("handler")
		return "response", Metadata{}, nil
	}), stack)

	res, _, err := h.Handle(context.Background(), "params")
	noError(t, err)
	if e, a := "response", res; e != a {
		t.Errorf("expect %v, got %v", e, a)
	}

	expectIDList(t, []string{"init", "serialize", "build", "finalize", "deserialize", "handler"}, order)

	expectIDList(t, []string{
		"test stack",
		"Initialize stack step", "init",
		"Serialize stack step", "serialize",
		"Build stack step", "build",
		"Finalize stack step", "finalize",
		"Deserialize stack step", "deserialize",
	}, stack.List())

	expectString := "test stack\n" +
		"\tInitialize stack step\n\t\tinit\n" +
		"\tSerialize stack step\n\t\tserialize\n" +
		"\tBuild stack step\n\t\tbuild\n" +
		"\tFinalize stack step\n\t\tfinalize\n" +
		"\tDeserialize stack step\n\t\tdeserialize\n"
	if diff := cmp.Diff(expectString, stack.String()); diff != "" {
		t.Errorf("expect stack string match\n%s", diff)
	}
}
