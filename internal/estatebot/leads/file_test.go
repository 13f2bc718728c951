package leads

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
)

func testFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	logger, err := logx.NewLogger(filepath.Join(dir, "logs"))
	require.NoError(t, err)

	path := filepath.Join(dir, "contacts.json")
	store, err := NewFile(path, logger)
	require.NoError(t, err)
	return store, path
}

func testLead(userID string) Lead {
	return Lead{
		UserID:    userID,
		Name:      "Иван Иванов",
		Phone:     "79161234567",
		Context:   "расскажи про ЖК Солнечный | Хороший выбор",
		Timestamp: time.Now(),
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the file on construction", func(t *testing.T) {
		_, path := testFileStore(t)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("save then list round-trips", func(t *testing.T) {
		store, _ := testFileStore(t)

		require.NoError(t, store.Save(ctx, testLead("u1")))
		require.NoError(t, store.Save(ctx, testLead("u2")))

		got, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "u1", got[0].UserID)
		assert.Equal(t, "u2", got[1].UserID)
		assert.Equal(t, "79161234567", got[0].Phone)
	})

	t.Run("survives a corrupt file, keeping the new lead", func(t *testing.T) {
		store, path := testFileStore(t)
		require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o644))

		require.NoError(t, store.Save(ctx, testLead("u3")))

		got, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "u3", got[0].UserID)
	})
}

func TestInmemStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and list", func(t *testing.T) {
		store := NewInmem()
		require.NoError(t, store.Save(ctx, testLead("u1")))

		got, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "u1", got[0].UserID)
	})

	t.Run("fail flag makes save return the sentinel", func(t *testing.T) {
		store := NewInmem()
		store.FailSave = true

		err := store.Save(ctx, testLead("u1"))
		assert.ErrorIs(t, err, ErrSaveFailed)
	})
}
