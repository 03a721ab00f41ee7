// Package service contains the application's business logic layer.
package service

import (
	"inkstream/internal/models"

	"github.com/samber/lo"
)

func toTagSummary(link models.PostTag, _ int) models.TagSummary {
	return models.TagSummary{
		ID:   link.Tag.ID,
		Name: link.Tag.Name,
		Slug: link.Tag.Slug,
	}
}

func toPostSummary(p *models.Post) models.PostSummary {
	return models.PostSummary{
		ID:         p.ID,
		Slug:       p.Slug,
		Title:      p.Title,
		Excerpt:    p.Excerpt,
		CoverImage: p.CoverImage,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		Tags:       lo.Map(p.Tags, toTagSummary),
		Author:     p.Author.Summary(),
		ReactionTotals: models.ReactionTotals{
			Likes: p.LikesCount,
			Claps: p.ClapsCount,
		},
		CommentCount: p.CommentsCount,
	}
}

func toPostDetail(p *models.Post) *models.PostDetail {
	return &models.PostDetail{
		PostSummary: toPostSummary(p),
		Content:     p.Content,
		UpdatedAt:   p.UpdatedAt,
	}
}
