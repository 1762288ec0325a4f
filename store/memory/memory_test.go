package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/viewkit/store"
	"github.com/dmitrymomot/viewkit/store/memory"
)

type user struct {
	ID    string
	Email string
}

func userRepo(items ...user) *memory.Repository[user] {
	repo := memory.New(func(u user, field string) (any, bool) {
		switch field {
		case "id":
			return u.ID, true
		case "email":
			return u.Email, true
		}
		return nil, false
	})
	for _, u := range items {
		_ = repo.Save(context.Background(), &u)
	}
	return repo
}

func TestRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("get by id", func(t *testing.T) {
		repo := userRepo(user{ID: "u1", Email: "a@example.com"})

		got, err := repo.Get(ctx, "id", "u1")
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", got.Email)
	})

	t.Run("get by secondary field", func(t *testing.T) {
		repo := userRepo(
			user{ID: "u1", Email: "a@example.com"},
			user{ID: "u2", Email: "b@example.com"},
		)

		got, err := repo.Get(ctx, "email", "b@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u2", got.ID)
	})

	t.Run("miss and unknown field", func(t *testing.T) {
		repo := userRepo(user{ID: "u1"})

		_, err := repo.Get(ctx, "id", "nope")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = repo.Get(ctx, "nickname", "x")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("save replaces by id", func(t *testing.T) {
		repo := userRepo(user{ID: "u1", Email: "old@example.com"})

		require.NoError(t, repo.Save(ctx, &user{ID: "u1", Email: "new@example.com"}))

		got, err := repo.Get(ctx, "id", "u1")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", got.Email)

		count, err := repo.Objects().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("delete removes by id", func(t *testing.T) {
		repo := userRepo(user{ID: "u1"}, user{ID: "u2"})

		require.NoError(t, repo.Delete(ctx, &user{ID: "u1"}))

		_, err := repo.Get(ctx, "id", "u1")
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = repo.Get(ctx, "id", "u2")
		assert.NoError(t, err)
	})

	t.Run("delete absent entity is a no-op", func(t *testing.T) {
		repo := userRepo(user{ID: "u1"})
		assert.NoError(t, repo.Delete(ctx, &user{ID: "ghost"}))
	})

	t.Run("returned pointer is a copy", func(t *testing.T) {
		repo := userRepo(user{ID: "u1", Email: "a@example.com"})

		got, err := repo.Get(ctx, "id", "u1")
		require.NoError(t, err)
		got.Email = "mutated@example.com"

		fresh, err := repo.Get(ctx, "id", "u1")
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", fresh.Email)
	})
}

func TestObjects(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshot is isolated from later writes", func(t *testing.T) {
		repo := userRepo(user{ID: "u1"})
		qs := repo.Objects()

		require.NoError(t, repo.Save(ctx, &user{ID: "u2"}))

		count, err := qs.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("insertion order preserved", func(t *testing.T) {
		repo := userRepo(user{ID: "u1"}, user{ID: "u2"}, user{ID: "u3"})

		all, err := repo.Objects().All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "u1", all[0].ID)
		assert.Equal(t, "u3", all[2].ID)
	})
}

func TestQueryset(t *testing.T) {
	ctx := context.Background()
	items := []user{{ID: "u1"}, {ID: "u2"}}

	t.Run("exists and count", func(t *testing.T) {
		qs := memory.Queryset(items)

		exists, err := qs.Exists(ctx)
		require.NoError(t, err)
		assert.True(t, exists)

		count, err := qs.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		empty := memory.Queryset([]user{})
		exists, err = empty.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("clone is independent", func(t *testing.T) {
		qs := memory.Queryset(items)
		clone := qs.Clone()

		all, err := clone.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, items, all)

		// Mutating the returned slice never touches the queryset.
		all[0].ID = "mutated"
		again, err := qs.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, "u1", again[0].ID)
	})
}
