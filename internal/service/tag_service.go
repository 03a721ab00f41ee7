package service

import (
	"context"
	"strings"

	"inkstream/internal/cache"
	"inkstream/internal/models"
	"inkstream/internal/repository"
	"inkstream/internal/slug"

	"gorm.io/gorm"
)

// MaxTagsPerPost caps how many tags a single post can carry.
const MaxTagsPerPost = 6

type TagService struct {
	db      *gorm.DB
	tagRepo repository.TagRepository
}

func NewTagService(db *gorm.DB, tagRepo repository.TagRepository) *TagService {
	return &TagService{db: db, tagRepo: tagRepo}
}

// minTagLen is the minimum tag length after trimming.
const minTagLen = 2

// normalizeTags trims the raw names, drops entries shorter than two
// characters or without sluggable content, dedupes by slug (the first
// occurrence wins) and caps the result. The stored display name is the
// title-cased form of the winning spelling.
func normalizeTags(names []string) []models.Tag {
	out := make([]models.Tag, 0, len(names))
	seen := map[string]struct{}{}
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		s := slug.Make(name)
		if len([]rune(name)) < minTagLen || s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, models.Tag{Name: slug.FormatTagName(name), Slug: s})
		if len(out) == MaxTagsPerPost {
			break
		}
	}
	return out
}

// SyncTags reconciles the post's tag set with names. A nil slice means "leave
// tags alone"; an empty slice removes every tag. Tag rows are created lazily
// and never deleted, only unlinked.
func (s *TagService) SyncTags(ctx context.Context, postID string, names *[]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.syncTagsTx(ctx, tx, postID, names)
	})
}

func (s *TagService) syncTagsTx(ctx context.Context, tx *gorm.DB, postID string, names *[]string) error {
	if names == nil {
		return nil
	}

	repo := s.tagRepo.WithTx(tx)

	desired := normalizeTags(*names)
	if len(desired) == 0 {
		if err := repo.UnlinkAll(ctx, postID); err != nil {
			return err
		}
		cache.Invalidate(ctx, cache.TagIndexKey)
		return nil
	}

	keep := make([]string, 0, len(desired))
	for _, want := range desired {
		tag, err := repo.UpsertTag(ctx, want.Name, want.Slug)
		if err != nil {
			return err
		}
		if err := repo.LinkPost(ctx, postID, tag.ID); err != nil {
			return err
		}
		keep = append(keep, tag.ID)
	}

	if err := repo.UnlinkNotIn(ctx, postID, keep); err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.TagIndexKey)
	return nil
}

// ListTags returns all tags with live post counts. The unfiltered listing is
// served from cache.
func (s *TagService) ListTags(ctx context.Context, search string) ([]models.Tag, error) {
	search = strings.TrimSpace(search)

	if search == "" {
		var cached []models.Tag
		err := cache.Aside(ctx, cache.TagIndexKey, &cached, cache.TagIndexTTL, func() error {
			tags, err := s.tagRepo.List(ctx, "")
			if err != nil {
				return err
			}
			cached = tags
			return nil
		})
		return cached, err
	}

	return s.tagRepo.List(ctx, search)
}
