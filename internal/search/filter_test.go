package search

import (
	"testing"

	"jobhunter/pkg/models"

	"github.com/stretchr/testify/assert"
)

func filterListings() []*models.JobListing {
	return []*models.JobListing{
		{
			ID:           "go-remote",
			Title:        "Senior Go Developer",
			Company:      "Northwind",
			Location:     "Remote",
			RemoteMode:   models.RemoteModeRemote,
			Technologies: []string{"Go", "Kubernetes"},
		},
		{
			ID:         "go-berlin",
			Title:      "Go Developer",
			Company:    "Acme",
			Location:   "Berlin, Germany",
			RemoteMode: models.RemoteModeOnsite,
			Description: "Backend services in Go.",
		},
		{
			ID:         "python-chicago",
			Title:      "Python Engineer",
			Company:    "Brightpath",
			Location:   "Chicago, IL",
			RemoteMode: models.RemoteModeOnsite,
			Technologies: []string{"Python"},
		},
	}
}

func TestFilterListingsKeywords(t *testing.T) {
	out := FilterListings(filterListings(), Criteria{Keywords: []string{"python"}})
	assert.Len(t, out, 1)
	assert.Equal(t, "python-chicago", out[0].ID)

	// Any single keyword hit is enough.
	out = FilterListings(filterListings(), Criteria{Keywords: []string{"kubernetes", "django"}})
	assert.Len(t, out, 1)
	assert.Equal(t, "go-remote", out[0].ID)

	// No keywords means no keyword filtering.
	out = FilterListings(filterListings(), Criteria{})
	assert.Len(t, out, 3)
}

func TestFilterListingsLocation(t *testing.T) {
	out := FilterListings(filterListings(), Criteria{Location: "berlin"})

	// Remote listings match every location.
	assert.Len(t, out, 2)
	assert.Equal(t, "go-remote", out[0].ID)
	assert.Equal(t, "go-berlin", out[1].ID)
}

func TestFilterListingsSeniority(t *testing.T) {
	out := FilterListings(filterListings(), Criteria{Seniority: "senior"})
	assert.Len(t, out, 1)
	assert.Equal(t, "go-remote", out[0].ID)
}

func TestFilterListingsMaxResults(t *testing.T) {
	out := FilterListings(filterListings(), Criteria{MaxResults: 2})
	assert.Len(t, out, 2)

	out = FilterListings(filterListings(), Criteria{MaxResults: 0})
	assert.Len(t, out, 3)
}
