package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrCompanyNotFound = errors.New("company not found")

type Company struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Document string `gorm:"unique;not null"`
	Active   bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CompanyDAO struct {
	db *gorm.DB
}

func NewCompanyDAO(db *gorm.DB) *CompanyDAO {
	return &CompanyDAO{
		db: db,
	}
}

func (d *CompanyDAO) Insert(ctx context.Context, company Company) (Company, error) {
	result := d.db.WithContext(ctx).Create(&company)
	if result.Error != nil {
		return Company{}, result.Error
	}

	return company, nil
}

func (d *CompanyDAO) FindByID(ctx context.Context, id uint) (Company, error) {
	var company Company

	result := d.db.WithContext(ctx).First(&company, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Company{}, ErrCompanyNotFound
		}

		return Company{}, result.Error
	}

	return company, nil
}

func (d *CompanyDAO) FindAll(ctx context.Context) ([]Company, error) {
	var companies []Company

	result := d.db.WithContext(ctx).Order("id").Find(&companies)
	if result.Error != nil {
		return nil, result.Error
	}

	return companies, nil
}
