package repository

import (
	"context"
	"fmt"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository/dao"
)

var ErrCompanyNotFound = dao.ErrCompanyNotFound

type CompanyDAO interface {
	Insert(ctx context.Context, company dao.Company) (dao.Company, error)
	FindByID(ctx context.Context, id uint) (dao.Company, error)
	FindAll(ctx context.Context) ([]dao.Company, error)
}

type CompanyRepository struct {
	dao CompanyDAO
}

func NewCompanyRepository(dao CompanyDAO) *CompanyRepository {
	return &CompanyRepository{
		dao: dao,
	}
}

func (r *CompanyRepository) daoToDomain(c dao.Company) domain.Company {
	return domain.Company{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CompanyRepository) Create(ctx context.Context, company domain.Company) (domain.Company, error) {
	created, err := r.dao.Insert(ctx, dao.Company{
		Name:     company.Name,
		Document: company.Document,
		Active:   true,
	})
	if err != nil {
		return domain.Company{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uint) (domain.Company, error) {
	company, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Company{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(company), nil
}

func (r *CompanyRepository) FindAll(ctx context.Context) ([]domain.Company, error) {
	companies, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.Company, len(companies))
	for i, c := range companies {
		result[i] = r.daoToDomain(c)
	}

	return result, nil
}
