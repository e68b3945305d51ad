package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateAreaRequest_Validate(t *testing.T) {
	valid := CreateAreaRequest{Name: "Centro", City: "Recife", State: "PE", SeriesNumber: "0001"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  CreateAreaRequest
	}{
		{"missing name", CreateAreaRequest{SeriesNumber: "0001"}},
		{"missing series", CreateAreaRequest{Name: "Centro"}},
		{"non numeric series", CreateAreaRequest{Name: "Centro", SeriesNumber: "12a4"}},
		{"negative series", CreateAreaRequest{Name: "Centro", SeriesNumber: "-1"}},
		{"state too long", CreateAreaRequest{Name: "Centro", State: "ABC", SeriesNumber: "0001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestUpdateAreaRequest_Validate(t *testing.T) {
	series := "0100"
	valid := UpdateAreaRequest{SeriesNumber: &series}
	assert.NoError(t, valid.Validate())

	empty := UpdateAreaRequest{}
	assert.NoError(t, empty.Validate(), "an empty patch is a no-op, not an error")

	bad := "12a4"
	invalid := UpdateAreaRequest{SeriesNumber: &bad}
	assert.Error(t, invalid.Validate())
}

func TestUpsertAreaConfigRequest_Validate(t *testing.T) {
	rate := 0.15
	valid := UpsertAreaConfigRequest{
		CommissionRate:  &rate,
		ExtractionTimes: []string{"10:00", "14:00", "21:30"},
	}
	assert.NoError(t, valid.Validate())

	over := 1.5
	assert.Error(t, (&UpsertAreaConfigRequest{CommissionRate: &over}).Validate())

	assert.Error(t, (&UpsertAreaConfigRequest{ExtractionTimes: []string{"25:00"}}).Validate())
	assert.Error(t, (&UpsertAreaConfigRequest{ExtractionTimes: []string{"9am"}}).Validate())
}

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:    "op@example.com",
		Password: "Sup3rSecret",
		Name:     "Ana",
		Role:     "operator",
	}
	assert.NoError(t, valid.Validate())

	weak := valid
	weak.Password = "alllower1"
	assert.Error(t, weak.Validate())

	badRole := valid
	badRole.Role = "superuser"
	assert.Error(t, badRole.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())
}

func TestIssueTicketRequest_Validate(t *testing.T) {
	valid := IssueTicketRequest{AreaID: 1, GameID: 2, PaymentMethodID: "pm_card"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&IssueTicketRequest{GameID: 2, PaymentMethodID: "pm"}).Validate())
	assert.Error(t, (&IssueTicketRequest{AreaID: 1, GameID: 2}).Validate())
}

func TestUpsertExtractionSeriesRequest_Validate(t *testing.T) {
	valid := UpsertExtractionSeriesRequest{Time: "14:00", LastSeries: 31}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&UpsertExtractionSeriesRequest{Time: "24:00", LastSeries: 31}).Validate())
	assert.Error(t, (&UpsertExtractionSeriesRequest{Time: "14:00", LastSeries: -1}).Validate())
}
