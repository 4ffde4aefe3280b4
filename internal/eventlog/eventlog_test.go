package eventlog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent(ActionCreate, EntityProduct, 4, "Cable", "admin")

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, ActionCreate, e.Action)
	assert.Equal(t, EntityProduct, e.Entity)
	assert.Equal(t, 4, e.EntityID)
	assert.False(t, e.At.IsZero())
}

func TestMemoryLog_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog(0)

	for i := 1; i <= 3; i++ {
		require.NoError(t, log.Append(ctx, NewEvent(ActionCreate, EntityCategory, i, "", "")))
	}

	all, err := log.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{all[0].EntityID, all[1].EntityID, all[2].EntityID})

	two, err := log.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, 3, two[0].EntityID)
}

func TestMemoryLog_MaxEntries(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog(2)

	for i := 1; i <= 5; i++ {
		require.NoError(t, log.Append(ctx, NewEvent(ActionDelete, EntityProduct, i, "", "")))
	}

	all, err := log.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 5, all[0].EntityID)
	assert.Equal(t, 4, all[1].EntityID)
}

func TestMemoryLog_Empty(t *testing.T) {
	events, err := NewMemoryLog(0).List(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, events)
}
