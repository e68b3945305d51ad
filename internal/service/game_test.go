package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palpita/lottery-api/internal/domain"
)

func TestGameService_UpsertExtractionSeries(t *testing.T) {
	gameRepo := &fakeGameRepo{games: map[uint]domain.Game{
		2: {ID: 2, CompanyID: 1, Name: "Daily Draw", Active: true},
	}}
	auditor := &recordingAuditor{}
	svc := NewGameService(gameRepo, auditor, nil)

	adminID := uint(9)
	areaID := uint(5)

	es, err := svc.UpsertExtractionSeries(context.Background(), nil, domain.ExtractionSeries{
		GameID:     2,
		AreaID:     &areaID,
		Time:       "14:00",
		LastSeries: 31,
	}, &adminID)

	require.NoError(t, err)
	assert.Equal(t, 31, es.LastSeries)

	require.Len(t, auditor.logs, 1)
	assert.Equal(t, domain.AuditUpdate, auditor.logs[0].Action)
	assert.Equal(t, "2:5:14:00", auditor.logs[0].EntityKey)
}

func TestGameService_UpsertExtractionSeries_CompanyWide(t *testing.T) {
	gameRepo := &fakeGameRepo{games: map[uint]domain.Game{
		2: {ID: 2, CompanyID: 1, Active: true},
	}}
	auditor := &recordingAuditor{}
	svc := NewGameService(gameRepo, auditor, nil)

	adminID := uint(9)

	// A nil area means the counter applies to the whole company.
	_, err := svc.UpsertExtractionSeries(context.Background(), nil, domain.ExtractionSeries{
		GameID:     2,
		Time:       "20:00",
		LastSeries: 7,
	}, &adminID)

	require.NoError(t, err)
	require.Len(t, auditor.logs, 1)
	assert.Equal(t, "2:-:20:00", auditor.logs[0].EntityKey)
}

func TestGameService_UpsertExtractionSeries_ForeignGame(t *testing.T) {
	gameRepo := &fakeGameRepo{games: map[uint]domain.Game{
		2: {ID: 2, CompanyID: 1, Active: true},
	}}
	svc := NewGameService(gameRepo, &recordingAuditor{}, nil)

	otherCompany := uint(3)
	_, err := svc.UpsertExtractionSeries(context.Background(), &otherCompany, domain.ExtractionSeries{
		GameID: 2,
		Time:   "14:00",
	}, nil)

	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestGameService_Delete_ResolvesTenantFirst(t *testing.T) {
	gameRepo := &fakeGameRepo{games: map[uint]domain.Game{
		2: {ID: 2, CompanyID: 1, Name: "Daily Draw", Active: true},
	}}
	svc := NewGameService(gameRepo, &recordingAuditor{}, nil)

	// A platform-admin delete looks the game up before removing it, so the
	// owning tenant's catalog entry can be invalidated alongside the global one.
	require.NoError(t, svc.Delete(context.Background(), 2, nil))
	assert.NotZero(t, gameRepo.findCalls)
	assert.Equal(t, []uint{2}, gameRepo.deleted)

	err := svc.Delete(context.Background(), 2, nil)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestParseScheduleTime(t *testing.T) {
	assert.NoError(t, ParseScheduleTime("00:00"))
	assert.NoError(t, ParseScheduleTime("23:59"))
	assert.Error(t, ParseScheduleTime("24:00"))
	assert.Error(t, ParseScheduleTime("9am"))
	assert.Error(t, ParseScheduleTime(""))
}
