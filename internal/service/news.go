package service

import (
	"context"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/repository"
)

type newsService struct {
	newsRepo repository.NewsRepository
}

func NewNewsService(newsRepo repository.NewsRepository) NewsService {
	return &newsService{newsRepo: newsRepo}
}

func (s *newsService) ListNews(ctx context.Context) ([]domain.NewsArticle, error) {
	articles, err := s.newsRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []domain.NewsArticle{}
	}
	return articles, nil
}

func (s *newsService) GetNews(ctx context.Context, id int32) (*domain.NewsArticle, error) {
	return s.newsRepo.GetByID(ctx, id)
}

func (s *newsService) CreateNews(ctx context.Context, n *domain.NewsArticle) error {
	if err := ValidateRequired(map[string]string{
		"title":   n.Title,
		"content": n.Content,
	}, []string{"title", "content"}); err != nil {
		return err
	}
	return s.newsRepo.Create(ctx, n)
}

func (s *newsService) UpdateNews(ctx context.Context, n *domain.NewsArticle) error {
	if err := ValidateRequired(map[string]string{
		"title":   n.Title,
		"content": n.Content,
	}, []string{"title", "content"}); err != nil {
		return err
	}
	return s.newsRepo.Update(ctx, n)
}

func (s *newsService) DeleteNews(ctx context.Context, id int32) error {
	return s.newsRepo.Delete(ctx, id)
}
