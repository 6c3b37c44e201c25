// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
//
// GetByID intentionally bypasses the cache: callers that mutate a user must
// see the full stored record (including the password hash, which is never
// serialized into the cache). GetPublicByID is the cached read-only variant.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetPublicByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	SaveBoth(ctx context.Context, a, b *models.User) error
	Delete(ctx context.Context, user *models.User) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetPublicByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		full, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		user = full.Public()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// SaveBoth persists both endpoints of a relationship edge in one transaction.
// When both arguments refer to the same user (a self-directed edge) only one
// write is issued.
func (r *userRepository) SaveBoth(ctx context.Context, a, b *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		if b.ID != a.ID {
			if err := tx.Save(b).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, a.ID)
	cache.InvalidateUser(ctx, b.ID)
	return nil
}

// Delete removes the user, cascade-deletes every post they authored, and
// purges dangling references to the user (and to their posts) from all other
// users and posts, all in one transaction.
func (r *userRepository) Delete(ctx context.Context, user *models.User) error {
	var touchedUsers []uint
	var touchedPosts []uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ownPosts []models.Post
		if err := tx.Where("author_id = ?", user.ID).Find(&ownPosts).Error; err != nil {
			return err
		}
		ownPostIDs := make(map[uint]bool, len(ownPosts))
		for _, p := range ownPosts {
			ownPostIDs[p.ID] = true
			touchedPosts = append(touchedPosts, p.ID)
		}

		if err := tx.Where("author_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		// Strip the user from other users' follower/following sets and the
		// deleted posts from their liked sets. The graph is small enough to
		// scan; the JSON columns cannot be queried for membership portably.
		var users []models.User
		if err := tx.Find(&users).Error; err != nil {
			return err
		}
		for i := range users {
			u := &users[i]
			if u.ID == user.ID {
				continue
			}
			changed := false
			if u.Followers.Contains(user.ID) {
				u.Followers = u.Followers.Remove(user.ID)
				changed = true
			}
			if u.Following.Contains(user.ID) {
				u.Following = u.Following.Remove(user.ID)
				changed = true
			}
			for _, pid := range u.LikedPosts {
				if ownPostIDs[pid] {
					u.LikedPosts = u.LikedPosts.Remove(pid)
					changed = true
				}
			}
			if changed {
				if err := tx.Save(u).Error; err != nil {
					return err
				}
				touchedUsers = append(touchedUsers, u.ID)
			}
		}

		// Withdraw the deleted user's likes from surviving posts.
		var posts []models.Post
		if err := tx.Find(&posts).Error; err != nil {
			return err
		}
		for i := range posts {
			p := &posts[i]
			if p.Likes.Contains(user.ID) {
				p.Likes = p.Likes.Remove(user.ID)
				p.TotalLikes = len(p.Likes)
				if err := tx.Save(p).Error; err != nil {
					return err
				}
				touchedPosts = append(touchedPosts, p.ID)
			}
		}

		return tx.Delete(&models.User{}, user.ID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, user.ID)
	for _, id := range touchedUsers {
		cache.InvalidateUser(ctx, id)
	}
	for _, id := range touchedPosts {
		cache.InvalidatePost(ctx, id)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505, SQLite UNIQUE constraint message
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
