package pipeline

import (
	"jobhunter/pkg/models"
	"jobhunter/pkg/utils"
)

// allowedTransitions is the application lifecycle state machine. Every
// transition is caused by an explicit call; none happen automatically or on a
// timer. Offer and rejected are terminal.
var allowedTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.StatusDraft:        {models.StatusApplied},
	models.StatusApplied:      {models.StatusInterviewing, models.StatusRejected},
	models.StatusInterviewing: {models.StatusOffer, models.StatusRejected},
}

// Transition moves an application to the next lifecycle state, rejecting
// moves the state machine does not allow.
func Transition(app *models.ApplicationSubmission, to models.ApplicationStatus) error {
	for _, next := range allowedTransitions[app.Status] {
		if next == to {
			app.Status = to
			return nil
		}
	}
	return utils.NewLifecycleError(string(app.Status), string(to))
}
