package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFunction_Variants(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		handler   string
		image     string
		wantImage bool
		wantErr   bool
	}{
		{name: "handler only", handler: "src/a/index.handler"},
		{name: "image only", image: "123.dkr.ecr/app:latest", wantImage: true},
		{name: "image wins over handler", handler: "src/a/index.handler", image: "app", wantImage: true},
		{name: "neither", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fn, err := NewFunction("fn", tc.handler, tc.image, "nodejs18.x")
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			_, isImage := fn.(*ImageFunction)
			assert.Equal(t, tc.wantImage, isImage)
			assert.Equal(t, "fn", fn.FunctionName())
			assert.Equal(t, "nodejs18.x", fn.DeclaredRuntime())
		})
	}
}

func TestHandlerFunction_SourceDir(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"src/a/index.handler":         "src/a",
		"index.handler":               "",
		"functions/deep/nested/h.run": "functions/deep/nested",
	}
	for handler, want := range testCases {
		fn := &HandlerFunction{Name: "x", Handler: handler}
		assert.Equal(t, want, fn.SourceDir(), "handler %q", handler)
	}
}

func TestService_Lookup(t *testing.T) {
	t.Parallel()

	svc := &Service{
		Name: "svc",
		Functions: []Function{
			&ImageFunction{Name: "img", Image: "app"},
			&HandlerFunction{Name: "a", Handler: "src/a/index.handler"},
			&HandlerFunction{Name: "b", Handler: "src/b/index.handler"},
		},
	}

	fn, ok := svc.Function("b")
	require.True(t, ok)
	require.Equal(t, "src/b/index.handler", fn.(*HandlerFunction).Handler)

	_, ok = svc.Function("missing")
	require.False(t, ok)

	require.Equal(t, []string{"img", "a", "b"}, svc.FunctionNames())
	require.Equal(t, "a", svc.FirstHandlerFunction().Name)
}

func TestService_Validate(t *testing.T) {
	t.Parallel()

	svc := &Service{
		Functions: []Function{
			&HandlerFunction{Name: "a", Handler: "src/a/index.handler"},
			&HandlerFunction{Name: "a", Handler: "src/a/other.handler"},
			&HandlerFunction{Name: "c", Handler: "/abs/index.handler"},
		},
	}

	err := svc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service name must not be empty")
	assert.Contains(t, err.Error(), `function "a" is declared more than once`)
	assert.Contains(t, err.Error(), `function "c" has a malformed handler`)

	ok := &Service{Name: "svc", Functions: []Function{&HandlerFunction{Name: "a", Handler: "h.run"}}}
	require.NoError(t, ok.Validate())
}
