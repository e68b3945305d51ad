package service

import (
	"context"
	"fmt"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository"
)

var ErrCompanyNotFound = repository.ErrCompanyNotFound

type CompanyRepository interface {
	Create(ctx context.Context, company domain.Company) (domain.Company, error)
	FindByID(ctx context.Context, id uint) (domain.Company, error)
	FindAll(ctx context.Context) ([]domain.Company, error)
}

type CompanyService struct {
	repo CompanyRepository
}

func NewCompanyService(repo CompanyRepository) *CompanyService {
	return &CompanyService{
		repo: repo,
	}
}

func (s *CompanyService) Create(ctx context.Context, company domain.Company) (domain.Company, error) {
	created, err := s.repo.Create(ctx, company)
	if err != nil {
		return domain.Company{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CompanyService) FindAll(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return companies, nil
}
