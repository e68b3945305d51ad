package repository

import (
	"context"
	"fmt"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository/dao"
)

var ErrTicketNotFound = dao.ErrTicketNotFound

type TicketDAO interface {
	InsertIssued(ctx context.Context, ticket dao.Ticket, maxPerSeries int) (dao.Ticket, error)
	FindByID(ctx context.Context, id uint, companyID *uint) (dao.Ticket, error)
	FindByArea(ctx context.Context, areaID uint, companyID *uint, limit, offset int) ([]dao.Ticket, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) domainToDao(t domain.Ticket) dao.Ticket {
	return dao.Ticket{
		ID:         t.ID,
		AreaID:     t.AreaID,
		GameID:     t.GameID,
		CompanyID:  t.CompanyID,
		Series:     t.Series,
		Serial:     t.Serial,
		BuyerName:  t.BuyerName,
		PriceCents: t.PriceCents,
		PaymentID:  t.PaymentID,
		SoldByID:   t.SoldByID,
		CreatedAt:  t.CreatedAt,
	}
}

func (r *TicketRepository) daoToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:         t.ID,
		AreaID:     t.AreaID,
		GameID:     t.GameID,
		CompanyID:  t.CompanyID,
		Series:     t.Series,
		Serial:     t.Serial,
		BuyerName:  t.BuyerName,
		PriceCents: t.PriceCents,
		PaymentID:  t.PaymentID,
		SoldByID:   t.SoldByID,
		CreatedAt:  t.CreatedAt,
	}
}

// CreateIssued persists a sold ticket and advances the owning area's series
// counter in the same store transaction.
func (r *TicketRepository) CreateIssued(ctx context.Context, ticket domain.Ticket, maxPerSeries int) (domain.Ticket, error) {
	created, err := r.dao.InsertIssued(ctx, r.domainToDao(ticket), maxPerSeries)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.InsertIssued -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint, companyID *uint) (domain.Ticket, error) {
	ticket, err := r.dao.FindByID(ctx, id, companyID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(ticket), nil
}

func (r *TicketRepository) FindByArea(ctx context.Context, areaID uint, companyID *uint, limit, offset int) ([]domain.Ticket, error) {
	tickets, err := r.dao.FindByArea(ctx, areaID, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByArea -> %w", err)
	}

	result := make([]domain.Ticket, len(tickets))
	for i, t := range tickets {
		result[i] = r.daoToDomain(t)
	}

	return result, nil
}
