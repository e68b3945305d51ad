package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository"
)

type fakeGameRepo struct {
	games     map[uint]domain.Game
	findCalls int
	deleted   []uint
}

func (r *fakeGameRepo) Create(_ context.Context, game domain.Game) (domain.Game, error) {
	return game, nil
}

func (r *fakeGameRepo) FindByID(_ context.Context, id uint, companyID *uint) (domain.Game, error) {
	r.findCalls++

	game, ok := r.games[id]
	if !ok || (companyID != nil && game.CompanyID != *companyID) {
		return domain.Game{}, repository.ErrGameNotFound
	}

	return game, nil
}

func (r *fakeGameRepo) FindAll(_ context.Context, _ *uint) ([]domain.Game, error) {
	return nil, nil
}

func (r *fakeGameRepo) Update(_ context.Context, _ uint, _ *uint, _ domain.GamePatch) (domain.Game, error) {
	return domain.Game{}, nil
}

func (r *fakeGameRepo) Delete(_ context.Context, id uint, companyID *uint) error {
	game, ok := r.games[id]
	if !ok || (companyID != nil && game.CompanyID != *companyID) {
		return repository.ErrGameNotFound
	}

	delete(r.games, id)
	r.deleted = append(r.deleted, id)

	return nil
}

func (r *fakeGameRepo) UpsertExtractionSeries(_ context.Context, es domain.ExtractionSeries) (domain.ExtractionSeries, error) {
	return es, nil
}

// fakeTicketRepo mirrors the store behavior: the insert and the counter
// mutation happen under one lock, and the sale that fills a series cycles it.
type fakeTicketRepo struct {
	mu      sync.Mutex
	areas   *fakeAreaRepo
	tickets []domain.Ticket
}

func (r *fakeTicketRepo) CreateIssued(_ context.Context, ticket domain.Ticket, maxPerSeries int) (domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.areas.mu.Lock()
	defer r.areas.mu.Unlock()

	area, ok := r.areas.areas[ticket.AreaID]
	if !ok {
		return domain.Ticket{}, repository.ErrAreaNotFound
	}

	ticket.ID = uint(len(r.tickets) + 1)
	ticket.Series = area.CurrentSeries
	ticket.Serial = area.TicketsInSeries + 1
	r.tickets = append(r.tickets, ticket)

	if maxPerSeries > 0 && ticket.Serial >= maxPerSeries {
		next, err := domain.NextSeries(area.CurrentSeries)
		if err != nil {
			return domain.Ticket{}, err
		}
		area.CurrentSeries = next
		area.TicketsInSeries = 0
	} else {
		area.TicketsInSeries++
	}
	r.areas.areas[area.ID] = area

	return ticket, nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, id uint, _ *uint) (domain.Ticket, error) {
	for _, t := range r.tickets {
		if t.ID == id {
			return t, nil
		}
	}

	return domain.Ticket{}, repository.ErrTicketNotFound
}

func (r *fakeTicketRepo) FindByArea(_ context.Context, areaID uint, _ *uint, _, _ int) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.tickets {
		if t.AreaID == areaID {
			out = append(out, t)
		}
	}

	return out, nil
}

type fakePayments struct {
	mu      sync.Mutex
	charges []int64
	err     error
}

func (p *fakePayments) Charge(_ context.Context, amountCents int64, _, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return "", p.err
	}
	p.charges = append(p.charges, amountCents)

	return "pi_test_123", nil
}

func newTicketFixture(maxPerSeries int) (*TicketService, *fakeAreaRepo, *fakeTicketRepo, *fakePayments) {
	areaRepo := newFakeAreaRepo(domain.Area{
		ID:            1,
		CompanyID:     1,
		SeriesNumber:  "0001",
		CurrentSeries: "0001",
	})
	gameRepo := &fakeGameRepo{games: map[uint]domain.Game{
		2: {
			ID:                  2,
			CompanyID:           1,
			Name:                "Daily Draw",
			MaxTicketsPerSeries: maxPerSeries,
			TicketPriceCents:    250,
			Active:              true,
		},
	}}
	ticketRepo := &fakeTicketRepo{areas: areaRepo}
	payments := &fakePayments{}
	svc := NewTicketService(ticketRepo, areaRepo, gameRepo, payments)

	return svc, areaRepo, ticketRepo, payments
}

func TestTicketService_Issue(t *testing.T) {
	svc, areaRepo, _, payments := newTicketFixture(100)

	input := IssueTicketInput{
		AreaID:          1,
		GameID:          2,
		BuyerName:       "Maria",
		PaymentMethodID: "pm_card",
		SoldByID:        4,
	}

	first, err := svc.Issue(context.Background(), nil, input)
	require.NoError(t, err)
	assert.Equal(t, "0001", first.Series)
	assert.Equal(t, 1, first.Serial)
	assert.Equal(t, int64(250), first.PriceCents)
	assert.Equal(t, "pi_test_123", first.PaymentID)

	second, err := svc.Issue(context.Background(), nil, input)
	require.NoError(t, err)
	assert.Equal(t, "0001", second.Series)
	assert.Equal(t, 2, second.Serial)

	area, err := areaRepo.FindByID(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, area.TicketsInSeries)
	assert.Len(t, payments.charges, 2)
}

func TestTicketService_Issue_CyclesAtSeriesMax(t *testing.T) {
	const maxPerSeries = 3

	svc, areaRepo, _, _ := newTicketFixture(maxPerSeries)

	input := IssueTicketInput{AreaID: 1, GameID: 2, PaymentMethodID: "pm_card"}

	for i := 1; i <= maxPerSeries; i++ {
		ticket, err := svc.Issue(context.Background(), nil, input)
		require.NoError(t, err)
		assert.Equal(t, "0001", ticket.Series)
		assert.Equal(t, i, ticket.Serial)
	}

	// The sale that filled the series closed it.
	area, err := areaRepo.FindByID(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "0002", area.CurrentSeries)
	assert.Zero(t, area.TicketsInSeries)

	next, err := svc.Issue(context.Background(), nil, input)
	require.NoError(t, err)
	assert.Equal(t, "0002", next.Series)
	assert.Equal(t, 1, next.Serial)
}

func TestTicketService_Issue_InactiveGame(t *testing.T) {
	svc, _, _, _ := newTicketFixture(100)
	gameRepo := svc.gameRepo.(*fakeGameRepo)
	game := gameRepo.games[2]
	game.Active = false
	gameRepo.games[2] = game

	_, err := svc.Issue(context.Background(), nil, IssueTicketInput{AreaID: 1, GameID: 2})

	assert.ErrorIs(t, err, ErrGameInactive)
}

func TestTicketService_Issue_TenantMismatch(t *testing.T) {
	svc, _, _, _ := newTicketFixture(100)
	gameRepo := svc.gameRepo.(*fakeGameRepo)
	game := gameRepo.games[2]
	game.CompanyID = 99
	gameRepo.games[2] = game

	_, err := svc.Issue(context.Background(), nil, IssueTicketInput{AreaID: 1, GameID: 2})

	assert.ErrorIs(t, err, ErrTenantMismatch)
}

func TestTicketService_Issue_ScopedLookups(t *testing.T) {
	svc, _, _, _ := newTicketFixture(100)

	otherCompany := uint(2)
	_, err := svc.Issue(context.Background(), &otherCompany, IssueTicketInput{AreaID: 1, GameID: 2})

	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestTicketService_Issue_PaymentFailureAborts(t *testing.T) {
	svc, areaRepo, ticketRepo, payments := newTicketFixture(100)
	payments.err = errors.New("card declined")

	_, err := svc.Issue(context.Background(), nil, IssueTicketInput{AreaID: 1, GameID: 2, PaymentMethodID: "pm_card"})

	require.Error(t, err)
	assert.Empty(t, ticketRepo.tickets)

	area, findErr := areaRepo.FindByID(context.Background(), 1, nil)
	require.NoError(t, findErr)
	assert.Zero(t, area.TicketsInSeries, "a failed charge must not consume a serial")
}
