package service

import (
	"context"
	"sort"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// TimelineService computes a user's feed by fanning out over their follow
// list at read time. There is no precomputed per-user feed: read cost is
// proportional to |following| x average posts per author, which is acceptable
// at the expected follow cardinality.
type TimelineService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// NewTimelineService returns a new TimelineService.
func NewTimelineService(userRepo repository.UserRepository, postRepo repository.PostRepository) *TimelineService {
	return &TimelineService{userRepo: userRepo, postRepo: postRepo}
}

// GetTimeline returns a page of posts authored by users the given user
// follows, ordered by creation time descending.
//
// Each per-author sublist arrives pre-sorted, but the interleaving across
// authors is not, so the merged sequence is re-sorted before slicing.
// Equal timestamps fall back to ascending ID, which matches insertion order
// and keeps pagination deterministic. An offset past the end yields an empty
// page, not an error.
func (s *TimelineService) GetTimeline(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var feed []*models.Post
	for _, authorID := range user.Following {
		posts, err := s.postRepo.AllByAuthor(ctx, authorID)
		if err != nil {
			return nil, err
		}
		feed = append(feed, posts...)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		if !feed[i].CreatedAt.Equal(feed[j].CreatedAt) {
			return feed[i].CreatedAt.After(feed[j].CreatedAt)
		}
		return feed[i].ID < feed[j].ID
	})

	if offset >= len(feed) {
		return []*models.Post{}, nil
	}
	end := offset + limit
	if end > len(feed) {
		end = len(feed)
	}
	return feed[offset:end], nil
}
