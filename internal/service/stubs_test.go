package service

import (
	"context"

	"ripple/internal/models"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getPublicByIDFn func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	saveFn          func(context.Context, *models.User) error
	saveBothFn      func(context.Context, *models.User, *models.User) error
	deleteFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetPublicByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getPublicByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Save(ctx context.Context, user *models.User) error {
	return s.saveFn(ctx, user)
}
func (s *userRepoStub) SaveBoth(ctx context.Context, a, b *models.User) error {
	return s.saveBothFn(ctx, a, b)
}
func (s *userRepoStub) Delete(ctx context.Context, user *models.User) error {
	return s.deleteFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		},
		getPublicByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		},
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		saveFn:          func(context.Context, *models.User) error { return nil },
		saveBothFn:      func(context.Context, *models.User, *models.User) error { return nil },
		deleteFn:        func(context.Context, *models.User) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

// userRepoWith returns a stub backed by a fixed set of users, serving lookups
// by ID, username and email from the map.
func userRepoWith(users ...*models.User) *userRepoStub {
	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	stub := noopUserRepo()
	stub.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if u, ok := byID[id]; ok {
			return u, nil
		}
		return nil, models.NewNotFoundError("User", id)
	}
	stub.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		for _, u := range byID {
			if u.Username == username {
				return u, nil
			}
		}
		return nil, nil
	}
	stub.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		for _, u := range byID {
			if u.Email == email {
				return u, nil
			}
		}
		return nil, nil
	}
	return stub
}

type postRepoStub struct {
	createWithAuthorFn func(context.Context, *models.Post, *models.User) error
	getByIDFn          func(context.Context, uint) (*models.Post, error)
	listFn             func(context.Context, int, int) ([]*models.Post, error)
	listByAuthorFn     func(context.Context, uint, int, int) ([]*models.Post, error)
	allByAuthorFn      func(context.Context, uint) ([]*models.Post, error)
	saveFn             func(context.Context, *models.Post) error
	saveWithUserFn     func(context.Context, *models.Post, *models.User) error
	deleteWithAuthorFn func(context.Context, *models.Post, *models.User) error
}

func (s *postRepoStub) CreateWithAuthor(ctx context.Context, post *models.Post, author *models.User) error {
	return s.createWithAuthorFn(ctx, post, author)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) AllByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	return s.allByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) Save(ctx context.Context, post *models.Post) error {
	return s.saveFn(ctx, post)
}
func (s *postRepoStub) SaveWithUser(ctx context.Context, post *models.Post, user *models.User) error {
	return s.saveWithUserFn(ctx, post, user)
}
func (s *postRepoStub) DeleteWithAuthor(ctx context.Context, post *models.Post, author *models.User) error {
	return s.deleteWithAuthorFn(ctx, post, author)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createWithAuthorFn: func(context.Context, *models.Post, *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		},
		listFn:             func(context.Context, int, int) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn:     func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		allByAuthorFn:      func(context.Context, uint) ([]*models.Post, error) { return nil, nil },
		saveFn:             func(context.Context, *models.Post) error { return nil },
		saveWithUserFn:     func(context.Context, *models.Post, *models.User) error { return nil },
		deleteWithAuthorFn: func(context.Context, *models.Post, *models.User) error { return nil },
	}
}

// postRepoWith returns a stub backed by a fixed set of posts.
func postRepoWith(posts ...*models.Post) *postRepoStub {
	byID := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	stub := noopPostRepo()
	stub.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		if p, ok := byID[id]; ok {
			return p, nil
		}
		return nil, models.NewNotFoundError("Post", id)
	}
	stub.allByAuthorFn = func(_ context.Context, authorID uint) ([]*models.Post, error) {
		var out []*models.Post
		for _, p := range posts {
			if p.AuthorID == authorID {
				out = append(out, p)
			}
		}
		return out, nil
	}
	return stub
}
