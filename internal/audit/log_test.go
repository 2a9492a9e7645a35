package audit

import (
	"context"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAssignsIDAndTime(t *testing.T) {
	log := NewLog(4)
	require.NoError(t, log.Record(context.Background(), Entry{Action: "create", Entity: "user", EntityID: "6"}))

	entries := log.Recent(10)
	require.Len(t, entries, 1)
	_, err := uuid.Parse(entries[0].ID)
	assert.NoError(t, err)
	assert.False(t, entries[0].At.IsZero())
}

func TestRecordRequiresFields(t *testing.T) {
	log := NewLog(4)
	err := log.Record(context.Background(), Entry{Action: "create", Entity: "user"})
	assert.Error(t, err)
	assert.Empty(t, log.Recent(0))
}

func TestRecentWrapsAroundNewestFirst(t *testing.T) {
	log := NewLog(3)
	for i := 1; i <= 5; i++ {
		require.NoError(t, log.Record(context.Background(), Entry{Action: "update", Entity: "user", EntityID: strconv.Itoa(i)}))
	}

	entries := log.Recent(0)
	require.Len(t, entries, 3)
	assert.Equal(t, "5", entries[0].EntityID)
	assert.Equal(t, "4", entries[1].EntityID)
	assert.Equal(t, "3", entries[2].EntityID)

	assert.Len(t, log.Recent(2), 2)
}

func TestNilLogRecent(t *testing.T) {
	var log *Log
	assert.Empty(t, log.Recent(5))
	assert.Error(t, log.Record(context.Background(), Entry{}))
}
