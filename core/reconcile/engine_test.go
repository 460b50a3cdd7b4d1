package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int
	Name string
}

// mockAdapter is a testify mock of Adapter[item].
type mockAdapter struct {
	mock.Mock
}

func (m *mockAdapter) Kind() string {
	return "item"
}

func (m *mockAdapter) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockAdapter) FindByName(ctx context.Context, name string) (item, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(item), args.Error(1)
}

func (m *mockAdapter) Create(ctx context.Context, name string) (item, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(item), args.Error(1)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	tests := []struct {
		name       string
		setup      func(m *mockAdapter)
		want       Result[item]
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "Creates missing",
			setup: func(m *mockAdapter) {
				m.On("ExistsByName", ctx, "Herbert").Return(false, nil)
				m.On("Create", ctx, "Herbert").Return(item{ID: 1, Name: "Herbert"}, nil)
			},
			want: Result[item]{Entity: item{ID: 1, Name: "Herbert"}, Action: ActionCreated},
		},
		{
			name: "Reuses existing",
			setup: func(m *mockAdapter) {
				m.On("ExistsByName", ctx, "Herbert").Return(true, nil)
				m.On("FindByName", ctx, "Herbert").Return(item{ID: 7, Name: "Herbert"}, nil)
			},
			want: Result[item]{Entity: item{ID: 7, Name: "Herbert"}, Action: ActionReused},
		},
		{
			name: "Exists check fails",
			setup: func(m *mockAdapter) {
				m.On("ExistsByName", ctx, "Herbert").Return(false, boom)
			},
			wantErr:    boom,
			wantErrMsg: `check item "Herbert"`,
		},
		{
			name: "Create fails",
			setup: func(m *mockAdapter) {
				m.On("ExistsByName", ctx, "Herbert").Return(false, nil)
				m.On("Create", ctx, "Herbert").Return(item{}, boom)
			},
			wantErr:    boom,
			wantErrMsg: `create item "Herbert"`,
		},
		{
			name: "Find fails",
			setup: func(m *mockAdapter) {
				m.On("ExistsByName", ctx, "Herbert").Return(true, nil)
				m.On("FindByName", ctx, "Herbert").Return(item{}, boom)
			},
			wantErr:    boom,
			wantErrMsg: `find item "Herbert"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mockAdapter)
			tt.setup(m)

			got, err := Resolve[item](ctx, m, "Herbert")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.Equal(t, ActionNone, got.Action)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			m.AssertExpectations(t)
		})
	}
}

func TestResolve_NeverCreatesExisting(t *testing.T) {
	ctx := context.Background()
	m := new(mockAdapter)
	m.On("ExistsByName", ctx, "Herbert").Return(true, nil)
	m.On("FindByName", ctx, "Herbert").Return(item{ID: 3, Name: "Herbert"}, nil)

	for i := 0; i < 3; i++ {
		got, err := Resolve[item](ctx, m, "Herbert")
		require.NoError(t, err)
		assert.Equal(t, 3, got.Entity.ID)
	}
	m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "created", ActionCreated.String())
	assert.Equal(t, "reused", ActionReused.String())
	assert.Equal(t, "none", ActionNone.String())
}
