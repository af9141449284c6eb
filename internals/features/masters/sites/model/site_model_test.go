package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteStatus(t *testing.T) {
	start, end := "2025-01-10", "2025-03-31"
	site := SiteModel{StartDate: &start, EndDate: &end}

	assert.Equal(t, SiteStatusPreContract, site.Status("2025-01-09"))
	assert.Equal(t, SiteStatusInProgress, site.Status("2025-01-10"))
	assert.Equal(t, SiteStatusInProgress, site.Status("2025-03-31"))
	assert.Equal(t, SiteStatusCompleted, site.Status("2025-04-01"))

	site.IsSettled = true
	assert.Equal(t, SiteStatusSettled, site.Status("2025-01-01"))

	// open-ended sites stay in progress
	open := SiteModel{StartDate: &start}
	assert.Equal(t, SiteStatusInProgress, open.Status("2030-01-01"))
}
