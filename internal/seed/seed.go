package seed

import (
	"fmt"
	"log"

	"inkstream/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
	// MaxDays bounds how far back generated post timestamps are spread.
	MaxDays int
}

// tagPool is the set of tags generated posts draw from.
var tagPool = []string{
	"go", "rust", "javascript", "typescript", "python", "databases",
	"devops", "cloud", "testing", "architecture", "frontend", "backend",
	"career", "productivity", "open-source", "machine-learning", "security",
	"linux", "homelab", "writing",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d test users created", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[factory.rnd.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create posts: %w", err)
		}
		numTags := factory.rnd.Intn(4)
		for t := 0; t < numTags; t++ {
			name := tagPool[factory.rnd.Intn(len(tagPool))]
			if err := factory.TagPost(post, name); err != nil {
				return fmt.Errorf("failed to tag post: %w", err)
			}
		}
		posts = append(posts, post)
	}
	log.Printf("%d posts created", len(posts))

	if err := seedEngagement(factory, users, posts); err != nil {
		return err
	}

	log.Println("Database seeding completed successfully.")
	return nil
}

// seedEngagement spreads comments, reactions and follow edges across the
// generated users and posts.
func seedEngagement(factory *Factory, users []*models.User, posts []*models.Post) error {
	comments := 0
	reactions := 0
	for _, post := range posts {
		if post.Status != models.PostStatusPublished {
			continue
		}

		var roots []*models.Comment
		numComments := factory.rnd.Intn(6)
		for i := 0; i < numComments; i++ {
			author := users[factory.rnd.Intn(len(users))]
			var parent *models.Comment
			// about a third of comments reply to an earlier one
			if len(roots) > 0 && factory.rnd.Intn(3) == 0 {
				parent = roots[factory.rnd.Intn(len(roots))]
			}
			comment, err := factory.CreateComment(author, post, parent)
			if err != nil {
				return fmt.Errorf("failed to create comments: %w", err)
			}
			if parent == nil {
				roots = append(roots, comment)
			}
			comments++
		}

		numReactions := factory.rnd.Intn(len(users) + 1)
		for i := 0; i < numReactions; i++ {
			user := users[factory.rnd.Intn(len(users))]
			kind := models.ReactionLike
			if factory.rnd.Intn(3) == 0 {
				kind = models.ReactionClap
			}
			if err := factory.CreateReaction(user, post, kind); err != nil {
				return fmt.Errorf("failed to create reactions: %w", err)
			}
			reactions++
		}
	}
	log.Printf("%d comments and %d reactions created", comments, reactions)

	follows := 0
	for _, follower := range users {
		numFollows := factory.rnd.Intn(len(users) / 2)
		for i := 0; i < numFollows; i++ {
			following := users[factory.rnd.Intn(len(users))]
			if following.ID == follower.ID {
				continue
			}
			if err := factory.CreateFollow(follower, following); err != nil {
				return fmt.Errorf("failed to create follows: %w", err)
			}
			follows++
		}
	}
	log.Printf("%d follow edges created", follows)

	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE reactions, comments, post_tags, tags, follows, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
