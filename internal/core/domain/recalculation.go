package domain

import "time"

// RecalculationIssue records one listing that a recalculation pass skipped or failed.
type RecalculationIssue struct {
	ListingID string `json:"listingID"`
	Reason    string `json:"reason"`
}

// RecalculationReport summarises one RecalculationJob run.
type RecalculationReport struct {
	StartedAt time.Time            `json:"startedAt"`
	Duration  time.Duration        `json:"duration"`
	Processed int                  `json:"processed"`
	Skipped   int                  `json:"skipped"`
	Failed    int                  `json:"failed"`
	Issues    []RecalculationIssue `json:"issues,omitempty"`
}
