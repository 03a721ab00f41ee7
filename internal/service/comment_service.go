package service

import (
	"context"
	"errors"
	"strings"

	"inkstream/internal/models"
	"inkstream/internal/repository"

	"gorm.io/gorm"
)

const (
	minCommentLen = 2
	maxCommentLen = 5000
)

type CommentService struct {
	commentRepo repository.CommentRepository
	posts       *PostService
}

type CreateCommentInput struct {
	PostRef  string
	AuthorID string
	Content  string
	ParentID *string
}

func NewCommentService(commentRepo repository.CommentRepository, posts *PostService) *CommentService {
	return &CommentService{commentRepo: commentRepo, posts: posts}
}

// BuildTree folds a flat, creation-ordered comment list into a forest.
// Siblings keep their input order. A comment whose parent is missing from
// the list is promoted to a root rather than dropped.
func BuildTree(comments []*models.Comment) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &models.CommentNode{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			ParentID:  c.ParentID,
			Author:    c.Author.Summary(),
			Replies:   []*models.CommentNode{},
		}
	}

	roots := make([]*models.CommentNode, 0, len(comments))
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// ListTree returns the nested comment forest of a published post.
func (s *CommentService) ListTree(ctx context.Context, postRef string) ([]*models.CommentNode, error) {
	postID, err := s.posts.ResolvePostID(ctx, postRef, true)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildTree(comments), nil
}

// Create adds a comment, optionally as a reply to a parent within the same
// post.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.CommentNode, error) {
	if in.AuthorID == "" {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	content := strings.TrimSpace(in.Content)
	if len(content) < minCommentLen {
		return nil, models.NewValidationError("Comment must be at least 2 characters")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	postID, err := s.posts.ResolvePostID(ctx, in.PostRef, true)
	if err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		_, err := s.commentRepo.GetByIDInPost(ctx, *in.ParentID, postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Parent comment not found")
			}
			return nil, err
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: in.AuthorID,
		Content:  content,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload for the author preload.
	created, err := s.commentRepo.GetByIDInPost(ctx, comment.ID, postID)
	if err != nil {
		return nil, err
	}
	node := BuildTree([]*models.Comment{created})
	return node[0], nil
}
