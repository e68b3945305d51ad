package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository"
)

type fakeAreaRepo struct {
	mu      sync.Mutex
	nextID  uint
	areas   map[uint]domain.Area
	configs map[[2]uint]domain.AreaConfig
}

func newFakeAreaRepo(areas ...domain.Area) *fakeAreaRepo {
	r := &fakeAreaRepo{
		nextID:  1,
		areas:   make(map[uint]domain.Area),
		configs: make(map[[2]uint]domain.AreaConfig),
	}
	for _, a := range areas {
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
		r.areas[a.ID] = a
	}

	return r
}

func (r *fakeAreaRepo) visible(a domain.Area, companyID *uint) bool {
	return companyID == nil || a.CompanyID == *companyID
}

func (r *fakeAreaRepo) Create(_ context.Context, area domain.Area) (domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	area.ID = r.nextID
	r.nextID++
	r.areas[area.ID] = area

	return area, nil
}

func (r *fakeAreaRepo) FindByID(_ context.Context, id uint, companyID *uint) (domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	area, ok := r.areas[id]
	if !ok || !r.visible(area, companyID) {
		return domain.Area{}, repository.ErrAreaNotFound
	}

	return area, nil
}

func (r *fakeAreaRepo) FindAll(_ context.Context, companyID *uint) ([]domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Area
	for _, a := range r.areas {
		if r.visible(a, companyID) {
			out = append(out, a)
		}
	}

	return out, nil
}

func (r *fakeAreaRepo) Update(_ context.Context, id uint, companyID *uint, patch domain.AreaPatch) (domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	area, ok := r.areas[id]
	if !ok || !r.visible(area, companyID) {
		return domain.Area{}, repository.ErrAreaNotFound
	}

	if patch.Name != nil {
		area.Name = *patch.Name
	}
	if patch.City != nil {
		area.City = *patch.City
	}
	if patch.State != nil {
		area.State = *patch.State
	}
	if patch.SeriesNumber != nil {
		area.SeriesNumber = *patch.SeriesNumber
		area.CurrentSeries = *patch.SeriesNumber
		area.TicketsInSeries = 0
	}
	r.areas[id] = area

	return area, nil
}

func (r *fakeAreaRepo) Delete(_ context.Context, id uint, companyID *uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	area, ok := r.areas[id]
	if !ok || !r.visible(area, companyID) {
		return repository.ErrAreaNotFound
	}
	delete(r.areas, id)

	return nil
}

func (r *fakeAreaRepo) CycleSeries(_ context.Context, id uint, companyID *uint) (domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	area, ok := r.areas[id]
	if !ok || !r.visible(area, companyID) {
		return domain.Area{}, repository.ErrAreaNotFound
	}

	next, err := domain.NextSeries(area.CurrentSeries)
	if err != nil {
		return domain.Area{}, err
	}

	area.CurrentSeries = next
	area.TicketsInSeries = 0
	r.areas[id] = area

	return area, nil
}

func (r *fakeAreaRepo) FindConfig(_ context.Context, areaID, gameID uint) (domain.AreaConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conf, ok := r.configs[[2]uint{areaID, gameID}]
	if !ok {
		return domain.AreaConfig{}, repository.ErrAreaConfigNotFound
	}

	return conf, nil
}

func (r *fakeAreaRepo) UpsertConfig(_ context.Context, conf domain.AreaConfig) (domain.AreaConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.configs[[2]uint{conf.AreaID, conf.GameID}] = conf

	return conf, nil
}

func (r *fakeAreaRepo) DeleteConfig(_ context.Context, areaID, gameID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.configs, [2]uint{areaID, gameID})

	return nil
}

type recordingAuditor struct {
	mu   sync.Mutex
	logs []domain.AuditLog
}

func (a *recordingAuditor) RecordChange(_ context.Context, log domain.AuditLog) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.logs = append(a.logs, log)
}

func TestAreaService_Create(t *testing.T) {
	repo := newFakeAreaRepo()
	svc := NewAreaService(repo, &recordingAuditor{})

	created, err := svc.Create(context.Background(), domain.Area{
		Name:         "Centro",
		CompanyID:    1,
		SeriesNumber: "0001",
	})

	require.NoError(t, err)
	assert.Equal(t, "0001", created.SeriesNumber)
	assert.Equal(t, "0001", created.CurrentSeries)
	assert.Zero(t, created.TicketsInSeries)
}

func TestAreaService_Create_MalformedSeries(t *testing.T) {
	repo := newFakeAreaRepo()
	svc := NewAreaService(repo, &recordingAuditor{})

	for _, series := range []string{"", "12a4", "-1"} {
		_, err := svc.Create(context.Background(), domain.Area{
			Name:         "Centro",
			CompanyID:    1,
			SeriesNumber: series,
		})

		assert.ErrorIs(t, err, ErrMalformedSeries, "series %q", series)
	}
}

func TestAreaService_Update_ReconfiguresSeries(t *testing.T) {
	repo := newFakeAreaRepo(domain.Area{
		ID:              7,
		CompanyID:       1,
		SeriesNumber:    "0001",
		CurrentSeries:   "0005",
		TicketsInSeries: 42,
	})
	svc := NewAreaService(repo, &recordingAuditor{})

	series := "0100"
	updated, err := svc.Update(context.Background(), 7, nil, domain.AreaPatch{SeriesNumber: &series})

	require.NoError(t, err)
	assert.Equal(t, "0100", updated.CurrentSeries)
	assert.Zero(t, updated.TicketsInSeries, "reconfiguring the series must reset the count")
}

func TestAreaService_Update_RejectsMalformedSeries(t *testing.T) {
	repo := newFakeAreaRepo(domain.Area{ID: 7, CompanyID: 1, CurrentSeries: "0005"})
	svc := NewAreaService(repo, &recordingAuditor{})

	series := "12a4"
	_, err := svc.Update(context.Background(), 7, nil, domain.AreaPatch{SeriesNumber: &series})

	assert.ErrorIs(t, err, ErrMalformedSeries)
}

func TestAreaService_Update_TenantScoped(t *testing.T) {
	repo := newFakeAreaRepo(domain.Area{ID: 7, CompanyID: 1, CurrentSeries: "0005"})
	svc := NewAreaService(repo, &recordingAuditor{})

	otherCompany := uint(2)
	name := "Leste"
	_, err := svc.Update(context.Background(), 7, &otherCompany, domain.AreaPatch{Name: &name})

	// A foreign tenant sees the same error as a missing row.
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestAreaService_CycleSeries(t *testing.T) {
	repo := newFakeAreaRepo(domain.Area{
		ID:              3,
		CompanyID:       1,
		CurrentSeries:   "0009",
		TicketsInSeries: 500,
	})
	svc := NewAreaService(repo, &recordingAuditor{})

	area, err := svc.CycleSeries(context.Background(), 3, nil)

	require.NoError(t, err)
	assert.Equal(t, "0010", area.CurrentSeries)
	assert.Zero(t, area.TicketsInSeries)
}

func TestAreaService_CycleSeries_Concurrent(t *testing.T) {
	const cycles = 100

	repo := newFakeAreaRepo(domain.Area{ID: 3, CompanyID: 1, CurrentSeries: "0001"})
	svc := NewAreaService(repo, &recordingAuditor{})

	var wg sync.WaitGroup
	for i := 0; i < cycles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.CycleSeries(context.Background(), 3, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	area, err := svc.FindByID(context.Background(), 3, nil)
	require.NoError(t, err)

	// Every cycle advanced by exactly one; none were lost or collapsed.
	assert.Equal(t, domain.FormatSeries(1+cycles), area.CurrentSeries)
}

func TestAreaService_UpsertConfig_Audit(t *testing.T) {
	repo := newFakeAreaRepo(domain.Area{ID: 5, CompanyID: 1})
	auditor := &recordingAuditor{}
	svc := NewAreaService(repo, auditor)

	adminID := uint(9)
	rate := 0.12
	conf := domain.AreaConfig{AreaID: 5, GameID: 2, CommissionRate: &rate}

	_, err := svc.UpsertConfig(context.Background(), conf, &adminID)
	require.NoError(t, err)

	rate = 0.15
	_, err = svc.UpsertConfig(context.Background(), conf, &adminID)
	require.NoError(t, err)

	require.Len(t, auditor.logs, 2)
	assert.Equal(t, domain.AuditCreate, auditor.logs[0].Action)
	assert.Empty(t, auditor.logs[0].OldValue)
	assert.Equal(t, domain.AuditUpdate, auditor.logs[1].Action)
	assert.NotEmpty(t, auditor.logs[1].OldValue)
	assert.Equal(t, "5:2", auditor.logs[1].EntityKey)
}

func TestAreaService_DeleteConfig(t *testing.T) {
	repo := newFakeAreaRepo(domain.Area{ID: 5, CompanyID: 1})
	auditor := &recordingAuditor{}
	svc := NewAreaService(repo, auditor)

	adminID := uint(9)
	_, err := svc.UpsertConfig(context.Background(), domain.AreaConfig{AreaID: 5, GameID: 2}, nil)
	require.NoError(t, err)

	err = svc.DeleteConfig(context.Background(), 5, 2, &adminID)
	require.NoError(t, err)

	require.Len(t, auditor.logs, 1)
	assert.Equal(t, domain.AuditDelete, auditor.logs[0].Action)
	assert.NotEmpty(t, auditor.logs[0].OldValue)

	err = svc.DeleteConfig(context.Background(), 5, 2, &adminID)
	assert.ErrorIs(t, err, ErrAreaConfigNotFound)
}
