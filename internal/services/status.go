package services

import "github.com/jobvibe/jobvibe-api/internal/models"

// Status ranks. Rejection sits below Applied so the rank comparison never
// lets a rejected application "progress"; the override in DeriveStatus is
// what lets Rejection terminate any pipeline.
var statusRank = map[string]int{
	models.StatusRejected:  0,
	models.StatusApplied:   1,
	models.StatusInterview: 2,
	models.StatusOffer:     3,
}

// Communication types that move an application. Note and Follow-up are
// absent on purpose.
var communicationToStatus = map[string]string{
	models.CommTypeInterviewInvite: models.StatusInterview,
	models.CommTypeRejection:       models.StatusRejected,
	models.CommTypeOffer:           models.StatusOffer,
}

// DeriveStatus maps an incoming communication type and the application's
// current status to the status the application should carry afterwards.
// The boolean reports whether the caller must write the new status (and
// bump updated_at).
//
// A Rejection always applies. Any other target applies only when its rank
// strictly exceeds the current rank, so forward progress is monotonic:
// Offer + "Interview Invite" stays Offer.
func DeriveStatus(current, communicationType string) (string, bool) {
	target, ok := communicationToStatus[communicationType]
	if !ok {
		return current, false
	}
	if target == models.StatusRejected {
		return target, true
	}
	if statusRank[target] > statusRank[current] {
		return target, true
	}
	return current, false
}
