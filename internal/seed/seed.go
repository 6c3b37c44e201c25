// Package seed provides helpers to create development and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	// SkipBcrypt stores a plaintext password instead of hashing. Login will
	// not work for these accounts; useful only for fast bulk inserts.
	SkipBcrypt bool
	// MaxDays spreads post creation times over this many days in the past.
	MaxDays int
}

// Seeder populates the database with fake users, posts, follows and likes.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Posts go first so no user ever references
// a post that outlives its author list.
func (s *Seeder) ClearAll() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("failed to clear posts: %w", err)
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	log.Println("Cleared existing users and posts")
	return nil
}

// CreateUser constructs and persists a fake user. Optional override
// functions may modify the generated user before saving.
func (s *Seeder) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
	}

	if s.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", user.Username, err)
	}
	return user, nil
}

// CreatePost constructs and persists a fake post for the given author,
// stamping the author snapshot and prepending the post to the author's list.
func (s *Seeder) CreatePost(author *models.User) (*models.Post, error) {
	post := &models.Post{
		Body:           gofakeit.Sentence(s.rng.Intn(12) + 3),
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		AuthorUsername: author.Username,
	}

	maxDays := s.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	back := time.Duration(s.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(s.rng.Intn(24))*time.Hour +
		time.Duration(s.rng.Intn(60))*time.Minute
	post.CreatedAt = time.Now().Add(-back)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		author.Posts = author.Posts.Prepend(post.ID)
		return tx.Save(author).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post for %s: %w", author.Username, err)
	}
	return post, nil
}

// SeedSocialMesh creates numUsers accounts and wires a random follow graph
// between them. Each user follows a handful of others; both sides of every
// edge are written.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	for _, follower := range users {
		targets := s.rng.Intn(5) + 1
		for j := 0; j < targets; j++ {
			followee := users[s.rng.Intn(len(users))]
			if followee.ID == follower.ID || follower.Following.Contains(followee.ID) {
				continue
			}
			follower.Following = follower.Following.Prepend(followee.ID)
			followee.Followers = followee.Followers.Prepend(follower.ID)
		}
	}
	for _, user := range users {
		if err := s.db.Save(user).Error; err != nil {
			return nil, fmt.Errorf("failed to save follow edges for %s: %w", user.Username, err)
		}
	}
	log.Println("Wired follow graph")
	return users, nil
}

// SeedEngagement creates numPosts posts by random authors and sprinkles
// likes over them. Like counts are recomputed from the like lists so the
// stored totals always match.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to create posts for")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.rng.Intn(len(users))]
		post, err := s.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	log.Printf("Created %d posts", len(posts))

	for _, post := range posts {
		likers := s.rng.Intn(len(users)/2 + 1)
		for j := 0; j < likers; j++ {
			fan := users[s.rng.Intn(len(users))]
			if post.Likes.Contains(fan.ID) {
				continue
			}
			post.Likes = post.Likes.Prepend(fan.ID)
			fan.LikedPosts = fan.LikedPosts.Prepend(post.ID)
		}
		post.TotalLikes = len(post.Likes)
		if err := s.db.Save(post).Error; err != nil {
			return nil, fmt.Errorf("failed to save likes for post %d: %w", post.ID, err)
		}
	}
	for _, user := range users {
		if err := s.db.Save(user).Error; err != nil {
			return nil, fmt.Errorf("failed to save liked posts for %s: %w", user.Username, err)
		}
	}
	log.Println("Sprinkled likes")
	return posts, nil
}
