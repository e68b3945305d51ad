package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/palpita/lottery-api/internal/domain"
)

var ErrTicketNotFound = errors.New("ticket not found")

type Ticket struct {
	ID         uint   `gorm:"primaryKey"`
	AreaID     uint   `gorm:"not null;index"`
	Area       Area   `gorm:"foreignKey:AreaID;constraint:OnDelete:RESTRICT"`
	GameID     uint   `gorm:"not null;index"`
	Game       Game   `gorm:"foreignKey:GameID;constraint:OnDelete:RESTRICT"`
	CompanyID  uint   `gorm:"not null;index"`
	Series     string `gorm:"not null;index:idx_tickets_area_series"`
	Serial     int    `gorm:"not null"`
	BuyerName  string
	PriceCents int64  `gorm:"not null"`
	PaymentID  string `gorm:"not null"`
	SoldByID   uint   `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// InsertIssued records a sold ticket under the area's current series and
// advances the counter, all inside one transaction holding the area row
// lock. The ticket gets serial = ticketsInSeries+1; when that serial fills
// the series (maxPerSeries reached) the same transaction cycles the series,
// so the next sale starts a fresh one.
func (d *TicketDAO) InsertIssued(ctx context.Context, ticket Ticket, maxPerSeries int) (Ticket, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var area Area

		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ?", ticket.CompanyID).
			First(&area, ticket.AreaID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrAreaNotFound
			}

			return result.Error
		}

		ticket.Series = area.CurrentSeries
		ticket.Serial = area.TicketsInSeries + 1

		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}

		if maxPerSeries > 0 && ticket.Serial >= maxPerSeries {
			next, err := domain.NextSeries(area.CurrentSeries)
			if err != nil {
				return fmt.Errorf("domain.NextSeries -> %w", err)
			}

			return tx.Model(&Area{}).Where("id = ?", area.ID).
				Updates(map[string]any{
					"current_series":    next,
					"tickets_in_series": 0,
				}).Error
		}

		return tx.Model(&Area{}).Where("id = ?", area.ID).
			Update("tickets_in_series", gorm.Expr("tickets_in_series + 1")).Error
	})
	if err != nil {
		return Ticket{}, err
	}

	return ticket, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint, companyID *uint) (Ticket, error) {
	var ticket Ticket

	result := scoped(d.db.WithContext(ctx), companyID).First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByArea(ctx context.Context, areaID uint, companyID *uint, limit, offset int) ([]Ticket, error) {
	var tickets []Ticket

	result := scoped(d.db.WithContext(ctx), companyID).
		Where("area_id = ?", areaID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}
