package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
//
// Sorted queries order by created_at descending with ascending ID as the
// tie-break, so posts sharing a timestamp come back in insertion order.
type PostRepository interface {
	CreateWithAuthor(ctx context.Context, post *models.Post, author *models.User) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	AllByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	SaveWithUser(ctx context.Context, post *models.Post, user *models.User) error
	DeleteWithAuthor(ctx context.Context, post *models.Post, author *models.User) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// CreateWithAuthor inserts the post and prepends its ID to the author's posts
// sequence in one transaction. The prepend keeps the sequence newest-first,
// mirroring the created_at ordering of the sorted queries.
func (r *postRepository) CreateWithAuthor(ctx context.Context, post *models.Post, author *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		author.Posts = author.Posts.Prepend(post.ID)
		return tx.Save(author).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, author.ID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// AllByAuthor returns every post by the author, sorted like ListByAuthor.
// Used by the timeline fan-out, which sorts and slices the merged result
// itself.
func (r *postRepository) AllByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id ASC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// SaveWithUser persists a post and a user in one transaction. Used by the
// like toggle, which mutates both sides of the edge.
func (r *postRepository) SaveWithUser(ctx context.Context, post *models.Post, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		return tx.Save(user).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// DeleteWithAuthor removes the post's reference from the author's posts
// sequence first, then deletes the record, in one transaction. The author may
// be nil when the owning user no longer exists; the post is then deleted
// alone.
func (r *postRepository) DeleteWithAuthor(ctx context.Context, post *models.Post, author *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if author != nil {
			author.Posts = author.Posts.Remove(post.ID)
			if err := tx.Save(author).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	if author != nil {
		cache.InvalidateUser(ctx, author.ID)
	}
	return nil
}
