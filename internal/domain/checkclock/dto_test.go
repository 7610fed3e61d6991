package checkclock

import (
	"mime/multipart"
	"testing"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func TestCheckClockRequest_Validate(t *testing.T) {
	// No location at all is fine.
	req := CheckClockRequest{}
	assert.NoError(t, req.Validate())

	// A full pair is fine.
	req = CheckClockRequest{Latitude: floatPtr(-6.2), Longitude: floatPtr(106.8)}
	assert.NoError(t, req.Validate())

	// Half a pair is not.
	req = CheckClockRequest{Latitude: floatPtr(-6.2)}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "latitude", errs[0].Field)
}

func TestCheckClockRequest_Validate_CoordinateRange(t *testing.T) {
	req := CheckClockRequest{Latitude: floatPtr(91), Longitude: floatPtr(200)}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
}

func TestCheckClockRequest_Validate_File(t *testing.T) {
	req := CheckClockRequest{
		FileHeader: &multipart.FileHeader{Filename: "evidence.pdf", Size: 1024},
	}
	assert.Error(t, req.Validate())

	req = CheckClockRequest{
		FileHeader: &multipart.FileHeader{Filename: "evidence.jpg", Size: 11 << 20},
	}
	assert.Error(t, req.Validate())

	req = CheckClockRequest{
		FileHeader: &multipart.FileHeader{Filename: "evidence.JPG", Size: 1024},
	}
	assert.NoError(t, req.Validate())
}

func TestEventFilter_Validate_Defaults(t *testing.T) {
	filter := EventFilter{}
	require.NoError(t, filter.Validate())

	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 20, filter.PerPage)
	assert.Equal(t, "occurred_at", filter.SortBy)
	assert.Equal(t, "desc", filter.SortOrder)
}

func TestEventFilter_Validate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		filter EventFilter
	}{
		{"negative page", EventFilter{Page: -1}},
		{"per_page over cap", EventFilter{PerPage: 101}},
		{"unknown type", EventFilter{Type: strPtr("lunch")}},
		{"unknown status", EventFilter{Status: strPtr("rejected")}},
		{"bad date", EventFilter{Date: strPtr("11-03-2024")}},
		{"bad sort column", EventFilter{SortBy: "user_id; DROP TABLE users"}},
		{"bad sort order", EventFilter{SortOrder: "sideways"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Error(t, c.filter.Validate())
		})
	}
}

func TestDeclineRequest_Validate(t *testing.T) {
	req := DeclineRequest{Notes: "   "}
	assert.Error(t, req.Validate())

	req = DeclineRequest{Notes: "photo does not match the site"}
	assert.NoError(t, req.Validate())
}

const validUserID = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"

func TestManualEntryRequest_Validate(t *testing.T) {
	req := ManualEntryRequest{
		UserID:     validUserID,
		EventType:  "clock_in",
		OccurredAt: "2024-03-11T08:00:00+07:00",
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, 2024, req.ParsedOccurredAt().Year())
	assert.Equal(t, 8, req.ParsedOccurredAt().Hour())
}

func TestManualEntryRequest_Validate_Rejects(t *testing.T) {
	cases := []struct {
		name string
		req  ManualEntryRequest
	}{
		{"missing user", ManualEntryRequest{EventType: "clock_in", OccurredAt: "2024-03-11T08:00:00Z"}},
		{"malformed user id", ManualEntryRequest{UserID: "not-a-uuid", EventType: "clock_in", OccurredAt: "2024-03-11T08:00:00Z"}},
		{"bad event type", ManualEntryRequest{UserID: validUserID, EventType: "lunch", OccurredAt: "2024-03-11T08:00:00Z"}},
		{"missing timestamp", ManualEntryRequest{UserID: validUserID, EventType: "clock_in"}},
		{"date only timestamp", ManualEntryRequest{UserID: validUserID, EventType: "clock_in", OccurredAt: "2024-03-11"}},
		{"half coordinate pair", ManualEntryRequest{UserID: validUserID, EventType: "clock_in", OccurredAt: "2024-03-11T08:00:00Z", Longitude: floatPtr(106.8)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Error(t, c.req.Validate())
		})
	}
}
