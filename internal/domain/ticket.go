package domain

import "time"

// Ticket is a sold ticket. Series is the area's series label at sale time and
// Serial is its 1-based position inside that series; together with the area
// they form the printed ticket number.
type Ticket struct {
	ID         uint      `json:"id"`
	AreaID     uint      `json:"area_id"`
	GameID     uint      `json:"game_id"`
	CompanyID  uint      `json:"company_id"`
	Series     string    `json:"series"`
	Serial     int       `json:"serial"`
	BuyerName  string    `json:"buyer_name"`
	PriceCents int64     `json:"price_cents"`
	PaymentID  string    `json:"payment_id"`
	SoldByID   uint      `json:"sold_by_id"`
	CreatedAt  time.Time `json:"created_at"`
}
