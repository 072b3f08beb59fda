package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	task, err := NewTask(7, "Buy milk", &due)
	require.NoError(t, err)
	assert.Equal(t, int64(7), task.OwnerID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.Completed, "new tasks start incomplete")
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))

	_, err = NewTask(7, "", nil)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = NewTask(7, "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyTitle, "whitespace-only titles are rejected")
}

func TestTaskApply(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	str := func(s string) *string { return &s }
	boolp := func(b bool) *bool { return &b }

	t.Run("partial update only touches provided fields", func(t *testing.T) {
		task, err := NewTask(1, "Original", &due)
		require.NoError(t, err)

		require.NoError(t, task.Apply(TaskPatch{Completed: boolp(true)}))
		assert.Equal(t, "Original", task.Title)
		assert.True(t, task.Completed)
		require.NotNil(t, task.DueDate)
	})

	t.Run("empty patch changes nothing but UpdatedAt", func(t *testing.T) {
		task, err := NewTask(1, "Original", &due)
		require.NoError(t, err)
		before := *task

		require.NoError(t, task.Apply(TaskPatch{}))
		assert.Equal(t, before.Title, task.Title)
		assert.Equal(t, before.Completed, task.Completed)
		assert.Equal(t, before.DueDate, task.DueDate)
		assert.False(t, task.UpdatedAt.Before(before.UpdatedAt))
	})

	t.Run("blank title is rejected and leaves the task untouched", func(t *testing.T) {
		task, err := NewTask(1, "Original", nil)
		require.NoError(t, err)

		err = task.Apply(TaskPatch{Title: str("  ")})
		assert.ErrorIs(t, err, ErrEmptyTitle)
		assert.Equal(t, "Original", task.Title)
	})

	t.Run("clearing the due date", func(t *testing.T) {
		task, err := NewTask(1, "Original", &due)
		require.NoError(t, err)

		require.NoError(t, task.Apply(TaskPatch{ClearDueDate: true}))
		assert.Nil(t, task.DueDate)
	})
}
