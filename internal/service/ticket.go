package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository"
)

var (
	ErrTicketNotFound = repository.ErrTicketNotFound
	ErrGameInactive   = errors.New("game is not active")
	ErrTenantMismatch = errors.New("area and game belong to different companies")
)

type TicketRepository interface {
	CreateIssued(ctx context.Context, ticket domain.Ticket, maxPerSeries int) (domain.Ticket, error)
	FindByID(ctx context.Context, id uint, companyID *uint) (domain.Ticket, error)
	FindByArea(ctx context.Context, areaID uint, companyID *uint, limit, offset int) ([]domain.Ticket, error)
}

// PaymentProvider captures the buyer's payment before the ticket is written.
type PaymentProvider interface {
	Charge(ctx context.Context, amountCents int64, paymentMethodID, description string) (string, error)
}

type IssueTicketInput struct {
	AreaID          uint
	GameID          uint
	BuyerName       string
	PaymentMethodID string
	SoldByID        uint
}

type TicketService struct {
	repo     TicketRepository
	areaRepo AreaRepository
	gameRepo GameRepository
	payments PaymentProvider
}

func NewTicketService(repo TicketRepository, areaRepo AreaRepository, gameRepo GameRepository, payments PaymentProvider) *TicketService {
	return &TicketService{
		repo:     repo,
		areaRepo: areaRepo,
		gameRepo: gameRepo,
		payments: payments,
	}
}

// Issue sells one ticket: it validates that the area and game exist inside
// the caller's tenant and belong to the same company, captures the payment,
// then persists the ticket while advancing the area's series counter. The
// counter mutation and the cycle decision both happen inside the store
// transaction, so the sale that fills a series also closes it.
func (s *TicketService) Issue(ctx context.Context, companyID *uint, input IssueTicketInput) (domain.Ticket, error) {
	area, err := s.areaRepo.FindByID(ctx, input.AreaID, companyID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.areaRepo.FindByID -> %w", err)
	}

	game, err := s.gameRepo.FindByID(ctx, input.GameID, companyID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.gameRepo.FindByID -> %w", err)
	}

	if !game.Active {
		return domain.Ticket{}, ErrGameInactive
	}
	if area.CompanyID != game.CompanyID {
		return domain.Ticket{}, ErrTenantMismatch
	}

	description := fmt.Sprintf("%s - area %s, series %s", game.Name, area.Name, area.CurrentSeries)
	paymentID, err := s.payments.Charge(ctx, game.TicketPriceCents, input.PaymentMethodID, description)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.payments.Charge -> %w", err)
	}

	ticket := domain.Ticket{
		AreaID:     area.ID,
		GameID:     game.ID,
		CompanyID:  area.CompanyID,
		BuyerName:  input.BuyerName,
		PriceCents: game.TicketPriceCents,
		PaymentID:  paymentID,
		SoldByID:   input.SoldByID,
	}

	created, err := s.repo.CreateIssued(ctx, ticket, game.MaxTicketsPerSeries)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.CreateIssued -> %w", err)
	}

	return created, nil
}

func (s *TicketService) FindByID(ctx context.Context, id uint, companyID *uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id, companyID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return ticket, nil
}

func (s *TicketService) FindByArea(ctx context.Context, areaID uint, companyID *uint, limit, offset int) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindByArea(ctx, areaID, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByArea -> %w", err)
	}

	return tickets, nil
}
