package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// PostService owns post lifecycle and the like edges of the social graph.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePost creates a post with a denormalized author snapshot and prepends
// its ID to the author's posts sequence. The snapshot is taken once and not
// kept in sync with later renames.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, body string) (*models.Post, error) {
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("Body is required")
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Body:           body,
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		AuthorUsername: author.Username,
	}
	if err := s.postRepo.CreateWithAuthor(ctx, post, author); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns the post with the given ID.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns all posts ordered by creation time descending.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// ListPostsByAuthor returns one author's posts ordered by creation time descending.
func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID, limit, offset)
}

// ToggleLike flips the like edge between caller and post and returns the
// updated post. The edge is stored on both endpoints (post.Likes and
// user.LikedPosts); both sides are persisted in one transaction and
// TotalLikes is recomputed from the authoritative set, never incremented.
func (s *PostService) ToggleLike(ctx context.Context, callerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	toggleSymmetricEdge(&post.Likes, user.ID, &user.LikedPosts, post.ID)
	post.TotalLikes = len(post.Likes)

	if err := s.postRepo.SaveWithUser(ctx, post, user); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost changes the post body. Only the author may update; an unchanged
// body is a no-op and issues no write.
func (s *PostService) UpdatePost(ctx context.Context, postID uint, body string, callerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if post.Body == body {
		return post, nil
	}

	post.Body = body
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Only the author may delete. The reference is
// removed from the author's posts sequence before the record itself goes, so
// a crash in between leaves an unreferenced post rather than a dangling
// reference.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	author, err := s.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		if models.ErrorCode(err) == models.CodeNotFound {
			// Author record already gone; delete the orphaned post alone.
			author = nil
		} else {
			return err
		}
	}

	return s.postRepo.DeleteWithAuthor(ctx, post, author)
}
