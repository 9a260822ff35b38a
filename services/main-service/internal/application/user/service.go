package user

import (
	"context"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type Repo interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	List(ctx context.Context, ids []int64, from, size int) ([]*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, name, email string) (*domain.User, error) {
	u, err := domain.NewUser(name, email)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, u)
}

func (s *Service) List(ctx context.Context, ids []int64, from, size int) ([]*domain.User, error) {
	return s.repo.List(ctx, ids, from, size)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
