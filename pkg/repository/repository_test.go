package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_New(t *testing.T) {
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}

	store, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, store.Close())
	}()

	require.NoError(t, store.Ping(context.Background()))
	assert.NotNil(t, store.Seen)
}

func TestStore_InitIdempotent(t *testing.T) {
	dsn := fmt.Sprintf("file:%s", filepath.Join(t.TempDir(), "giftmon.db"))

	store1, err := New(context.Background(), Config{DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, store1.Seen.Record(context.Background(), []string{"ev1"}))
	require.NoError(t, store1.Close())

	// opening the same storage again must neither fail nor wipe data
	store2, err := New(context.Background(), Config{DSN: dsn})
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, store2.Close())
	}()

	contains, err := store2.Seen.Contains(context.Background(), "ev1")
	require.NoError(t, err)
	assert.True(t, contains)
}

func TestCriticalError(t *testing.T) {
	originalErr := fmt.Errorf("test error message")
	critErr := &criticalError{err: originalErr}

	assert.Equal(t, "test error message", critErr.Error())
}

func TestIsLockError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"busy", fmt.Errorf("SQLITE_BUSY: database is busy"), true},
		{"locked", fmt.Errorf("database is locked"), true},
		{"table locked", fmt.Errorf("database table is locked"), true},
		{"other", fmt.Errorf("no such table"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLockError(tt.err))
		})
	}
}
