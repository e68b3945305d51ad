package dao

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/palpita/lottery-api/internal/domain"
)

// setupTestDB starts a throwaway Postgres container and returns a connected
// gorm handle with the schema migrated. Tests skip when Docker is unavailable.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest.NewPool -> %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=lottery_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf("host=localhost port=%s user=test password=test dbname=lottery_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func seedArea(t *testing.T, db *gorm.DB, companyID uint, series string) Area {
	t.Helper()

	require.NoError(t, db.Create(&Company{Name: "Test Co"}).Error)

	area := Area{
		Name:          "Centro",
		CompanyID:     companyID,
		SeriesNumber:  series,
		CurrentSeries: series,
	}
	require.NoError(t, db.Create(&area).Error)

	return area
}

func TestAreaDAO_CycleSeries(t *testing.T) {
	db := setupTestDB(t)
	areaDAO := NewAreaDAO(db)

	area := seedArea(t, db, 1, "0001")

	cycled, err := areaDAO.CycleSeries(context.Background(), area.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "0002", cycled.CurrentSeries)
	assert.Zero(t, cycled.TicketsInSeries)
}

func TestAreaDAO_CycleSeries_Concurrent(t *testing.T) {
	const cycles = 20

	db := setupTestDB(t)
	areaDAO := NewAreaDAO(db)

	area := seedArea(t, db, 1, "0001")

	var wg sync.WaitGroup
	for i := 0; i < cycles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := areaDAO.CycleSeries(context.Background(), area.ID, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := areaDAO.FindByID(context.Background(), area.ID, nil)
	require.NoError(t, err)

	// The row lock serializes cycles: none are lost to a stale read.
	assert.Equal(t, domain.FormatSeries(1+cycles), final.CurrentSeries)
}

func TestAreaDAO_TenantScoping(t *testing.T) {
	db := setupTestDB(t)
	areaDAO := NewAreaDAO(db)

	area := seedArea(t, db, 1, "0001")

	otherCompany := uint(2)
	_, err := areaDAO.FindByID(context.Background(), area.ID, &otherCompany)
	assert.ErrorIs(t, err, ErrAreaNotFound)

	_, err = areaDAO.CycleSeries(context.Background(), area.ID, &otherCompany)
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestAreaDAO_UpsertConfig_SingleRow(t *testing.T) {
	db := setupTestDB(t)
	areaDAO := NewAreaDAO(db)

	area := seedArea(t, db, 1, "0001")

	game := Game{Name: "Daily Draw", CompanyID: 1, MaxTicketsPerSeries: 100, TicketPriceCents: 250, Active: true}
	require.NoError(t, db.Create(&game).Error)

	rate := 0.12
	_, err := areaDAO.UpsertConfig(context.Background(), AreaConfig{
		AreaID:         area.ID,
		GameID:         game.ID,
		CommissionRate: &rate,
	})
	require.NoError(t, err)

	rate = 0.15
	conf, err := areaDAO.UpsertConfig(context.Background(), AreaConfig{
		AreaID:         area.ID,
		GameID:         game.ID,
		CommissionRate: &rate,
	})
	require.NoError(t, err)
	require.NotNil(t, conf.CommissionRate)
	assert.InDelta(t, 0.15, *conf.CommissionRate, 1e-9)

	var count int64
	require.NoError(t, db.Model(&AreaConfig{}).
		Where("area_id = ? AND game_id = ?", area.ID, game.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count, "repeated upserts must not create a second row")
}

func TestAreaDAO_Delete_WithTickets(t *testing.T) {
	db := setupTestDB(t)
	areaDAO := NewAreaDAO(db)
	ticketDAO := NewTicketDAO(db)

	area := seedArea(t, db, 1, "0001")
	game := Game{Name: "Daily Draw", CompanyID: 1, MaxTicketsPerSeries: 100, TicketPriceCents: 250, Active: true}
	require.NoError(t, db.Create(&game).Error)

	_, err := ticketDAO.InsertIssued(context.Background(), Ticket{
		AreaID:     area.ID,
		GameID:     game.ID,
		CompanyID:  1,
		PriceCents: 250,
		PaymentID:  "pi_test",
		SoldByID:   1,
	}, 100)
	require.NoError(t, err)

	err = areaDAO.Delete(context.Background(), area.ID, nil)
	assert.ErrorIs(t, err, ErrAreaHasDependents)

	// The rejected delete left the row untouched.
	after, err := areaDAO.FindByID(context.Background(), area.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "0001", after.CurrentSeries)
	assert.Equal(t, 1, after.TicketsInSeries)
}

func TestAreaDAO_Delete_WithConfig(t *testing.T) {
	db := setupTestDB(t)
	areaDAO := NewAreaDAO(db)

	area := seedArea(t, db, 1, "0001")
	game := Game{Name: "Daily Draw", CompanyID: 1, MaxTicketsPerSeries: 100, TicketPriceCents: 250, Active: true}
	require.NoError(t, db.Create(&game).Error)

	rate := 0.1
	_, err := areaDAO.UpsertConfig(context.Background(), AreaConfig{
		AreaID:         area.ID,
		GameID:         game.ID,
		CommissionRate: &rate,
	})
	require.NoError(t, err)

	err = areaDAO.Delete(context.Background(), area.ID, nil)
	assert.ErrorIs(t, err, ErrAreaHasDependents)

	// Removing the dependent row unblocks the delete.
	require.NoError(t, areaDAO.DeleteConfig(context.Background(), area.ID, game.ID))
	assert.NoError(t, areaDAO.Delete(context.Background(), area.ID, nil))
}

func TestGameDAO_Delete_WithExtractionSeries(t *testing.T) {
	db := setupTestDB(t)
	areaDAO := NewAreaDAO(db)
	gameDAO := NewGameDAO(db)

	area := seedArea(t, db, 1, "0001")
	game := Game{Name: "Daily Draw", CompanyID: 1, MaxTicketsPerSeries: 100, TicketPriceCents: 250, Active: true}
	require.NoError(t, db.Create(&game).Error)

	_, err := gameDAO.UpsertExtractionSeries(context.Background(), ExtractionSeries{
		GameID:     game.ID,
		AreaID:     &area.ID,
		Time:       "14:00",
		LastSeries: 3,
	})
	require.NoError(t, err)

	err = gameDAO.Delete(context.Background(), game.ID, nil)
	assert.ErrorIs(t, err, ErrGameHasDependents)

	// The same row also pins the area it targets.
	err = areaDAO.Delete(context.Background(), area.ID, nil)
	assert.ErrorIs(t, err, ErrAreaHasDependents)
}

func TestTicketDAO_InsertIssued(t *testing.T) {
	const maxPerSeries = 3

	db := setupTestDB(t)
	ticketDAO := NewTicketDAO(db)
	areaDAO := NewAreaDAO(db)

	area := seedArea(t, db, 1, "0001")
	game := Game{Name: "Daily Draw", CompanyID: 1, MaxTicketsPerSeries: maxPerSeries, TicketPriceCents: 250, Active: true}
	require.NoError(t, db.Create(&game).Error)

	base := Ticket{
		AreaID:     area.ID,
		GameID:     game.ID,
		CompanyID:  1,
		PriceCents: 250,
		PaymentID:  "pi_test",
		SoldByID:   1,
	}

	for i := 1; i <= maxPerSeries; i++ {
		ticket, err := ticketDAO.InsertIssued(context.Background(), base, maxPerSeries)
		require.NoError(t, err)
		assert.Equal(t, "0001", ticket.Series)
		assert.Equal(t, i, ticket.Serial)
	}

	// The sale that filled the series cycled it inside the same transaction.
	after, err := areaDAO.FindByID(context.Background(), area.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "0002", after.CurrentSeries)
	assert.Zero(t, after.TicketsInSeries)

	next, err := ticketDAO.InsertIssued(context.Background(), base, maxPerSeries)
	require.NoError(t, err)
	assert.Equal(t, "0002", next.Series)
	assert.Equal(t, 1, next.Serial)
}

func TestTicketDAO_InsertIssued_Concurrent(t *testing.T) {
	const sales = 20

	db := setupTestDB(t)
	ticketDAO := NewTicketDAO(db)

	area := seedArea(t, db, 1, "0001")
	game := Game{Name: "Daily Draw", CompanyID: 1, MaxTicketsPerSeries: 1000, TicketPriceCents: 250, Active: true}
	require.NoError(t, db.Create(&game).Error)

	base := Ticket{
		AreaID:     area.ID,
		GameID:     game.ID,
		CompanyID:  1,
		PriceCents: 250,
		PaymentID:  "pi_test",
		SoldByID:   1,
	}

	var wg sync.WaitGroup
	for i := 0; i < sales; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := ticketDAO.InsertIssued(context.Background(), base, 1000)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tickets, err := ticketDAO.FindByArea(context.Background(), area.ID, nil, sales, 0)
	require.NoError(t, err)
	require.Len(t, tickets, sales)

	// Every sale got a distinct serial under the row lock.
	seen := make(map[int]bool, sales)
	for _, ticket := range tickets {
		assert.False(t, seen[ticket.Serial], "duplicate serial %d", ticket.Serial)
		seen[ticket.Serial] = true
	}
}
