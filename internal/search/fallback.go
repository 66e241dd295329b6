package search

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobhunter/pkg/models"
)

//go:embed catalog.html
var catalogHTML string

// fallbackPostedDate keeps fallback results deterministic across runs.
var fallbackPostedDate = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

// FallbackSource serves listings parsed from the bundled job board snapshot.
// It backs the soft-failure policy: when the primary provider is unreachable,
// search degrades to this source instead of aborting.
type FallbackSource struct {
	listings []*models.JobListing
}

// NewFallbackSource parses the embedded snapshot once, up front.
func NewFallbackSource() (*FallbackSource, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(catalogHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded job catalog: %w", err)
	}

	var listings []*models.JobListing
	doc.Find("li.job").Each(func(_ int, s *goquery.Selection) {
		listings = append(listings, parseListing(s))
	})

	if len(listings) == 0 {
		return nil, fmt.Errorf("embedded job catalog contains no listings")
	}
	return &FallbackSource{listings: listings}, nil
}

func parseListing(s *goquery.Selection) *models.JobListing {
	job := &models.JobListing{
		ID:           s.AttrOr("data-id", ""),
		Title:        strings.TrimSpace(s.Find(".title").Text()),
		Company:      strings.TrimSpace(s.Find(".company").Text()),
		Location:     strings.TrimSpace(s.Find(".location").Text()),
		RemoteMode:   models.RemoteMode(s.AttrOr("data-remote", string(models.RemoteModeOnsite))),
		Description:  strings.TrimSpace(s.Find(".description").Text()),
		Requirements: strings.TrimSpace(s.Find(".requirements").Text()),
		Source:       "fallback",
		PostedDate:   fallbackPostedDate,
	}

	if techs := strings.TrimSpace(s.Find(".technologies").Text()); techs != "" {
		for _, t := range strings.Split(techs, ",") {
			job.Technologies = append(job.Technologies, strings.TrimSpace(t))
		}
	}

	if minStr, ok := s.Attr("data-salary-min"); ok {
		min, errMin := strconv.Atoi(minStr)
		max, errMax := strconv.Atoi(s.AttrOr("data-salary-max", ""))
		if errMin == nil && errMax == nil {
			job.Salary = &models.SalaryRange{
				Min:      min,
				Max:      max,
				Currency: s.AttrOr("data-currency", "USD"),
			}
		}
	}

	return job
}

func (f *FallbackSource) Name() string {
	return "fallback"
}

func (f *FallbackSource) Search(_ context.Context, criteria Criteria) ([]*models.JobListing, error) {
	return FilterListings(f.listings, criteria), nil
}
