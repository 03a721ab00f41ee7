// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkstream/internal/models"
	"inkstream/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, opts: opts, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:      gofakeit.Name(),
		Email:     gofakeit.Email(),
		Bio:       gofakeit.Sentence(10),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.PasswordHash = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.PasswordHash = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample `models.Post` for the given
// author. Created timestamps are spread backwards so feeds look lived-in.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	title := gofakeit.Sentence(5)
	content := gofakeit.Paragraph(3, 5, 8, "\n\n")
	post := &models.Post{
		Title:      title,
		Slug:       fmt.Sprintf("%s-%s", slug.Make(title), gofakeit.UUID()[:8]),
		Excerpt:    gofakeit.Sentence(15),
		Content:    content,
		CoverImage: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
		Status:     models.PostStatusPublished,
		AuthorID:   author.ID,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	minsBack := f.rnd.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	// roughly one post in six stays a draft
	if f.rnd.Intn(6) == 0 {
		post.Status = models.PostStatusDraft
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// TagPost attaches the named tags to the post, creating tags on first use.
func (f *Factory) TagPost(post *models.Post, names ...string) error {
	for _, name := range names {
		tag := models.Tag{Name: slug.FormatTagName(name), Slug: slug.Make(name)}
		if err := f.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&tag).Error; err != nil {
			return err
		}
		if err := f.db.Where("slug = ?", tag.Slug).First(&tag).Error; err != nil {
			return err
		}
		link := models.PostTag{PostID: post.ID, TagID: tag.ID}
		if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post, optionally as a reply to parent.
func (f *Factory) CreateComment(author *models.User, post *models.Post, parent *models.Comment, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(12),
		AuthorID: author.ID,
		PostID:   post.ID,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReaction persists a reaction from `user` on `post`. Duplicate
// reactions are silently skipped.
func (f *Factory) CreateReaction(user *models.User, post *models.Post, kind models.ReactionType) error {
	reaction := &models.Reaction{
		PostID: post.ID,
		UserID: user.ID,
		Type:   kind,
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(reaction).Error
}

// CreateFollow persists a follow edge from follower to following. Duplicate
// edges are silently skipped.
func (f *Factory) CreateFollow(follower, following *models.User) error {
	edge := &models.Follow{
		FollowerID:  follower.ID,
		FollowingID: following.ID,
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
}
