package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rsoares/taskhub-api/internal/domain"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(ErrTaskNotFound))
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("wrapped: %w", ErrTaskNotFound)))
	assert.False(t, IsNotFoundError(ErrEmailExists))

	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.False(t, IsDuplicateError(ErrTaskNotFound))
	assert.False(t, IsDuplicateError(errors.New("unrelated")))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection reset")
	err := NewStoreError("task", "list", "query failed", inner)

	assert.Contains(t, err.Error(), "list operation on task failed")
	assert.ErrorIs(t, err, inner)

	bare := NewStoreError("user", "create", "no rows", nil)
	assert.Equal(t, "create operation on user failed: no rows", bare.Error())
}

func TestListTasksParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*ListTasksParams)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(p *ListTasksParams) {}},
		{name: "page zero", mutate: func(p *ListTasksParams) { p.Page = 0 }, wantErr: domain.ErrInvalidPage},
		{name: "negative page", mutate: func(p *ListTasksParams) { p.Page = -3 }, wantErr: domain.ErrInvalidPage},
		{name: "limit zero", mutate: func(p *ListTasksParams) { p.Limit = 0 }, wantErr: domain.ErrInvalidLimit},
		{name: "limit above max", mutate: func(p *ListTasksParams) { p.Limit = 101 }, wantErr: domain.ErrInvalidLimit},
		{name: "limit at max", mutate: func(p *ListTasksParams) { p.Limit = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := NewListTasksParams(42)
			tt.mutate(&params)
			err := params.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("offset follows the page window", func(t *testing.T) {
		params := NewListTasksParams(42)
		params.Page = 3
		params.Limit = 10
		assert.Equal(t, 20, params.Offset())
		assert.Equal(t, int64(42), params.OwnerID())
	})
}
