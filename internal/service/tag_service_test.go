package service

import (
	"context"
	"testing"
	"time"

	"inkstream/internal/models"
	"inkstream/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNormalizeTags(t *testing.T) {
	t.Run("dedupes by slug keeping first spelling", func(t *testing.T) {
		got := normalizeTags([]string{"React", "react", " React "})
		require.Len(t, got, 1)
		assert.Equal(t, "React", got[0].Name)
		assert.Equal(t, "react", got[0].Slug)
	})

	t.Run("derives title-cased display names", func(t *testing.T) {
		got := normalizeTags([]string{"machine-learning", "snake_case_tag"})
		require.Len(t, got, 2)
		assert.Equal(t, "Machine Learning", got[0].Name)
		assert.Equal(t, "machine-learning", got[0].Slug)
		assert.Equal(t, "Snake Case Tag", got[1].Name)
	})

	t.Run("drops blank, short and unsluggable names", func(t *testing.T) {
		got := normalizeTags([]string{"", "   ", "!!!", "x", "Go"})
		require.Len(t, got, 1)
		assert.Equal(t, "go", got[0].Slug)
	})

	t.Run("caps at six", func(t *testing.T) {
		got := normalizeTags([]string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8"})
		assert.Len(t, got, MaxTagsPerPost)
	})
}

func syncSetup(t *testing.T) (*gorm.DB, *TagService, string) {
	db := setupTestDB(t)
	svc := NewTagService(db, repository.NewTagRepository(db))
	author := seedUser(t, db, "ts-author")
	post := seedPost(t, db, author.ID, "sync-target", models.PostStatusPublished, time.Now())
	return db, svc, post.ID
}

func postTagSlugs(t *testing.T, svc *TagService, db *gorm.DB, postID string) []string {
	t.Helper()
	tags, err := repository.NewTagRepository(db).ListByPost(context.Background(), postID)
	require.NoError(t, err)
	slugs := make([]string, len(tags))
	for i, tag := range tags {
		slugs[i] = tag.Slug
	}
	return slugs
}

func TestSyncTagsNilLeavesTagsAlone(t *testing.T) {
	db, svc, postID := syncSetup(t)
	ctx := context.Background()

	initial := []string{"keep-me"}
	require.NoError(t, svc.SyncTags(ctx, postID, &initial))
	require.NoError(t, svc.SyncTags(ctx, postID, nil))

	assert.Equal(t, []string{"keep-me"}, postTagSlugs(t, svc, db, postID))
}

func TestSyncTagsEmptyUnlinksAll(t *testing.T) {
	db, svc, postID := syncSetup(t)
	ctx := context.Background()

	initial := []string{"one", "two"}
	require.NoError(t, svc.SyncTags(ctx, postID, &initial))

	empty := []string{}
	require.NoError(t, svc.SyncTags(ctx, postID, &empty))
	assert.Empty(t, postTagSlugs(t, svc, db, postID))

	// Tag rows survive for reuse.
	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSyncTagsReconciles(t *testing.T) {
	db, svc, postID := syncSetup(t)
	ctx := context.Background()

	initial := []string{"go", "testing", "databases"}
	require.NoError(t, svc.SyncTags(ctx, postID, &initial))

	next := []string{"go", "performance"}
	require.NoError(t, svc.SyncTags(ctx, postID, &next))

	assert.Equal(t, []string{"go", "performance"}, postTagSlugs(t, svc, db, postID))
}

func TestSyncTagsDuplicateSpellings(t *testing.T) {
	db, svc, postID := syncSetup(t)
	ctx := context.Background()

	names := []string{"React", "react", " React "}
	require.NoError(t, svc.SyncTags(ctx, postID, &names))

	assert.Equal(t, []string{"react"}, postTagSlugs(t, svc, db, postID))

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListTags(t *testing.T) {
	_, svc, postID := syncSetup(t)
	ctx := context.Background()

	names := []string{"Go", "Testing"}
	require.NoError(t, svc.SyncTags(ctx, postID, &names))

	all, err := svc.ListTags(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListTags(ctx, "test")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "testing", filtered[0].Slug)
	assert.Equal(t, 1, filtered[0].PostCount)
}
