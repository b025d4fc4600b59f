package repository

import (
	"context"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func withUserCache(t *testing.T) *miniredis.Miniredis {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func TestUserRepository_GetByID_CacheKeepsPasswordHash(t *testing.T) {
	db := setupTestDB(t)
	mr := withUserCache(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: string(hashed)}
	require.NoError(t, repo.Create(ctx, user))

	// First read populates the cache
	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(hashed), first.Password)
	require.True(t, mr.Exists(cache.UserKey(user.ID)))

	// Second read is served from the cache and must still carry the hash
	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(hashed), cached.Password)
}

func TestUserRepository_UpdateAfterCacheHit_KeepsStoredHash(t *testing.T) {
	db := setupTestDB(t)
	withUserCache(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: string(hashed)}
	require.NoError(t, repo.Create(ctx, user))

	// Warm the cache, then mutate the cache-served record
	_, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)

	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)

	cached.Name = "Alice Renamed"
	require.NoError(t, repo.Update(ctx, cached))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Alice Renamed", stored.Name)

	// The persisted credential still verifies against the original password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))

	// And a post-invalidation read reflects the update with the hash intact
	refetched, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", refetched.Name)
	assert.Equal(t, string(hashed), refetched.Password)
}
