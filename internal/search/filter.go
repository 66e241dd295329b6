package search

import (
	"strings"

	"jobhunter/pkg/models"
)

// FilterListings applies search criteria to a listing set: any keyword must
// appear in the listing text, the location must match when given, and the
// result is capped at MaxResults.
func FilterListings(listings []*models.JobListing, criteria Criteria) []*models.JobListing {
	out := make([]*models.JobListing, 0, len(listings))
	for _, job := range listings {
		if !matchesKeywords(job, criteria.Keywords) {
			continue
		}
		if criteria.Location != "" && !strings.Contains(strings.ToLower(job.Location), strings.ToLower(criteria.Location)) &&
			job.RemoteMode != models.RemoteModeRemote {
			continue
		}
		if criteria.Seniority != "" && !strings.Contains(strings.ToLower(job.Title), strings.ToLower(criteria.Seniority)) {
			continue
		}
		out = append(out, job)
		if criteria.MaxResults > 0 && len(out) == criteria.MaxResults {
			break
		}
	}
	return out
}

func matchesKeywords(job *models.JobListing, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}

	haystack := strings.ToLower(strings.Join([]string{
		job.Title,
		job.Company,
		job.Description,
		job.Requirements,
		strings.Join(job.Technologies, " "),
	}, " "))

	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
