package operations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sganes21/Dataset-Final-Project/internal/operations"
	"github.com/sganes21/Dataset-Final-Project/internal/operations/testutil"
)

func ids(steps []operations.Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.ID()
	}
	return out
}

func TestRegistryRegister(t *testing.T) {
	registry := operations.NewRegistry()
	assert.Equal(t, 0, registry.Count())

	require.NoError(t, registry.Register(testutil.NewMockStep(nil, "step1")))
	require.NoError(t, registry.Register(testutil.NewMockStep(nil, "step2")))

	assert.Equal(t, 2, registry.Count())
	assert.True(t, registry.Has("step1"))
	assert.False(t, registry.Has("step3"))

	order, err := registry.DependencyOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"step1", "step2"}, ids(order))
}

func TestRegistryRegisterErrors(t *testing.T) {
	tests := []struct {
		name string
		step operations.Step
	}{
		{"nil step", nil},
		{"empty id", testutil.NewMockStep(nil, "")},
		{"duplicate", testutil.NewMockStep(nil, "dup")},
	}

	registry := operations.NewRegistry()
	require.NoError(t, registry.Register(testutil.NewMockStep(nil, "dup")))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register(tt.step)
			require.Error(t, err)
			assert.Equal(t, operations.ErrorTypeValidation, operations.GetErrorType(err))
		})
	}
}

func TestRegistryDependencyOrder(t *testing.T) {
	tests := []struct {
		name  string
		steps []operations.Step
		want  []string
	}{
		{
			name: "registration order without dependencies",
			steps: []operations.Step{
				testutil.NewMockStep(nil, "c"),
				testutil.NewMockStep(nil, "a"),
				testutil.NewMockStep(nil, "b"),
			},
			want: []string{"c", "a", "b"},
		},
		{
			name: "dependency registered later",
			steps: []operations.Step{
				testutil.NewMockStep(nil, "merge", "load-a", "load-b"),
				testutil.NewMockStep(nil, "load-a"),
				testutil.NewMockStep(nil, "load-b"),
			},
			want: []string{"load-a", "load-b", "merge"},
		},
		{
			name: "ready steps keep registration order",
			steps: []operations.Step{
				testutil.NewMockStep(nil, "load"),
				testutil.NewMockStep(nil, "chart-2", "clean"),
				testutil.NewMockStep(nil, "clean", "load"),
				testutil.NewMockStep(nil, "chart-1", "clean"),
				testutil.NewMockStep(nil, "export", "load"),
			},
			want: []string{"load", "clean", "chart-2", "chart-1", "export"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := operations.NewRegistry().MustRegister(tt.steps...)
			ordered, err := registry.DependencyOrder()
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(ordered))
		})
	}
}

func TestRegistryDependencyErrors(t *testing.T) {
	t.Run("unknown dependency", func(t *testing.T) {
		registry := operations.NewRegistry().MustRegister(testutil.NewMockStep(nil, "a", "ghost"))
		_, err := registry.DependencyOrder()
		require.Error(t, err)
		assert.Equal(t, operations.ErrorTypeDependency, operations.GetErrorType(err))
		assert.Equal(t, "a", operations.FailedStep(err))
	})

	t.Run("cycle", func(t *testing.T) {
		registry := operations.NewRegistry().MustRegister(
			testutil.NewMockStep(nil, "root"),
			testutil.NewMockStep(nil, "a", "b"),
			testutil.NewMockStep(nil, "b", "a"),
		)
		_, err := registry.DependencyOrder()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle")

		var opErr *operations.OperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, []string{"a", "b"}, opErr.Context["steps"])
	})

	t.Run("must register panics", func(t *testing.T) {
		assert.Panics(t, func() {
			operations.NewRegistry().MustRegister(testutil.NewMockStep(nil, "x"), testutil.NewMockStep(nil, "x"))
		})
	})
}
