package stores

import (
	"context"
	"testing"
	"time"

	"github.com/colonyops/proma/internal/core/member"
	"github.com/colonyops/proma/internal/data/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberStore(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T) *MemberStore {
		t.Helper()
		database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
		require.NoError(t, err)
		t.Cleanup(func() { _ = database.Close() })
		return NewMemberStore(database)
	}

	t.Run("lookup is case-insensitive and workspace scoped", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Add(ctx, member.Member{
			ID: "m-1", WorkspaceID: "ws-1", Name: "Nguyễn Văn Đức", CreatedAt: time.Now(),
		}))

		got, ok, err := store.Lookup(ctx, "ws-1", "  NGUYỄN VĂN ĐỨC ")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "m-1", got.ID)
		assert.Equal(t, "Nguyễn Văn Đức", got.Name)

		_, ok, err = store.Lookup(ctx, "ws-2", "Nguyễn Văn Đức")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = store.Lookup(ctx, "ws-1", "Nguyễn")
		require.NoError(t, err)
		assert.False(t, ok, "lookup is exact, not substring")
	})

	t.Run("duplicate name", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Add(ctx, member.Member{ID: "m-1", WorkspaceID: "ws-1", Name: "Lan"}))

		err := store.Add(ctx, member.Member{ID: "m-2", WorkspaceID: "ws-1", Name: "lan"})
		assert.ErrorIs(t, err, member.ErrDuplicate)

		require.NoError(t, store.Add(ctx, member.Member{ID: "m-3", WorkspaceID: "ws-2", Name: "lan"}))
	})

	t.Run("list and remove", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Add(ctx, member.Member{ID: "m-1", WorkspaceID: "ws-1", Name: "Minh", Team: "Platform"}))
		require.NoError(t, store.Add(ctx, member.Member{ID: "m-2", WorkspaceID: "ws-1", Name: "an", Email: "an@example.com"}))

		members, err := store.List(ctx, "ws-1")
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "an", members[0].Name)
		assert.Equal(t, "an@example.com", members[0].Email)
		assert.Equal(t, "Platform", members[1].Team)

		require.NoError(t, store.Remove(ctx, "ws-1", "m-1"))
		assert.ErrorIs(t, store.Remove(ctx, "ws-1", "m-1"), member.ErrNotFound)
	})
}
