package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/bookshare/internal/model"
)

func TestLogAppendAndListDescending(t *testing.T) {
	db := newTestDB(t)
	logs := NewLogRepository(db)

	for _, action := range []string{"create", "approve", "delete"} {
		require.NoError(t, logs.Append(&model.LogEntry{
			Type:   model.LogTypeBook,
			Action: action,
			UserID: 1,
		}))
	}

	entries, err := logs.List(0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// 时间倒序，最后写入的在最前
	assert.Equal(t, "delete", entries[0].Action)
	assert.Equal(t, "create", entries[2].Action)

	count, err := logs.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestLogClear(t *testing.T) {
	db := newTestDB(t)
	logs := NewLogRepository(db)

	require.NoError(t, logs.Append(&model.LogEntry{Type: model.LogTypeUser, Action: "ban", UserID: 1}))
	require.NoError(t, logs.Clear())

	count, err := logs.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLogPurgeBefore(t *testing.T) {
	db := newTestDB(t)
	logs := NewLogRepository(db)

	old := &model.LogEntry{Type: model.LogTypeBook, Action: "create", UserID: 1}
	require.NoError(t, logs.Append(old))
	// 人为做旧
	require.NoError(t, db.Model(&model.LogEntry{}).Where("id = ?", old.ID).
		Update("created_at", time.Now().AddDate(0, 0, -120)).Error)

	recent := &model.LogEntry{Type: model.LogTypeBook, Action: "approve", UserID: 1}
	require.NoError(t, logs.Append(recent))

	affected, err := logs.PurgeBefore(time.Now().AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	entries, err := logs.List(0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "approve", entries[0].Action)
}
