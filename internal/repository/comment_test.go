package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentRepository_ListByPostOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "c-author")
	reader := seedUser(t, db, "c-reader")
	post := seedPost(t, db, author.ID, "discussed", models.PostStatusPublished, time.Now())

	base := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		c := &models.Comment{
			PostID:    post.ID,
			AuthorID:  reader.ID,
			Content:   text,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(ctx, c))
	}

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "third", comments[2].Content)
	assert.Equal(t, reader.ID, comments[0].Author.ID)
}

func TestCommentRepository_GetByIDInPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "cp-author")
	post := seedPost(t, db, author.ID, "one", models.PostStatusPublished, time.Now())
	other := seedPost(t, db, author.ID, "two", models.PostStatusPublished, time.Now())

	comment := &models.Comment{PostID: post.ID, AuthorID: author.ID, Content: "hello"}
	require.NoError(t, repo.Create(ctx, comment))

	got, err := repo.GetByIDInPost(ctx, comment.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.ID, got.ID)

	// The same comment id scoped to a different post does not resolve.
	_, err = repo.GetByIDInPost(ctx, comment.ID, other.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCommentRepository_DeleteHidesFromList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "cd-author")
	post := seedPost(t, db, author.ID, "pruned", models.PostStatusPublished, time.Now())

	comment := &models.Comment{PostID: post.ID, AuthorID: author.ID, Content: "bye"}
	require.NoError(t, repo.Create(ctx, comment))
	require.NoError(t, repo.Delete(ctx, comment.ID))

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
