package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	result *dtos.AutofillResult
	err    error
}

func (f *fakeExtractor) ExtractApplication(ctx context.Context, text string) (*dtos.AutofillResult, error) {
	return f.result, f.err
}

func TestAutofillParseCreatesApplication(t *testing.T) {
	db := openTestDB(t, &models.Application{})
	s := NewAutofillService(db, &fakeExtractor{
		result: &dtos.AutofillResult{
			CompanyName: "Stripe",
			RoleTitle:   "Infrastructure Engineer",
			Location:    "Remote",
			Success:     true,
			Message:     "Extracted with AI",
		},
	})

	app, err := s.Parse(context.Background(), &dtos.AutofillParseRequest{
		Text: "Stripe is hiring an Infrastructure Engineer (Remote)",
	})
	require.NoError(t, err)
	assert.Equal(t, "Stripe", app.CompanyName)
	assert.Equal(t, "Infrastructure Engineer", app.RoleTitle)
	assert.Equal(t, "Remote", app.Location)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Equal(t, "Autofill", app.Source)

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAutofillParsePropagatesFailureWithoutURL(t *testing.T) {
	db := openTestDB(t, &models.Application{})
	s := NewAutofillService(db, &fakeExtractor{err: errors.New("completion API down")})

	_, err := s.Parse(context.Background(), &dtos.AutofillParseRequest{
		Text: "some pasted posting",
	})
	assert.ErrorContains(t, err, "completion API down")

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "nothing is created when extraction fails")
}

func TestAutofillParseFallsBackToURLParsing(t *testing.T) {
	db := openTestDB(t, &models.Application{})
	s := NewAutofillService(db, &fakeExtractor{err: errors.New("completion API down")})

	app, err := s.Parse(context.Background(), &dtos.AutofillParseRequest{
		URL: "https://jobs.shopify.com/postings/backend-developer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Shopify", app.CompanyName)
	assert.Equal(t, "Software Engineer", app.RoleTitle)
}

func TestAutofillParseRejectsEmptyInput(t *testing.T) {
	db := openTestDB(t, &models.Application{})
	s := NewAutofillService(db, &fakeExtractor{})

	_, err := s.Parse(context.Background(), &dtos.AutofillParseRequest{})
	assert.Error(t, err)
}

func TestParseJobURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://jobs.netflix.com/jobs/123", "Netflix"},
		{"https://careers.shopify.com/search", "Shopify"},
		{"https://www.linkedin.com/company/jane-street/jobs", "Jane Street"},
		{"https://www.linkedin.com/jobs/view/software-engineer-at-stripe-4012345678", "Stripe"},
		{"https://example.org/some/posting", "Unknown Company"},
	}
	for _, tt := range tests {
		got := parseJobURL(tt.url)
		if got.CompanyName != tt.want {
			t.Errorf("parseJobURL(%q).CompanyName = %q, want %q", tt.url, got.CompanyName, tt.want)
		}
	}
}

func TestTitleizeSlug(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"rbc", "RBC"},
		{"telus", "TELUS"},
		{"jane-street", "Jane Street"},
		{"databricks", "Databricks"},
	}
	for _, tt := range tests {
		if got := titleizeSlug(tt.slug); got != tt.want {
			t.Errorf("titleizeSlug(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}
