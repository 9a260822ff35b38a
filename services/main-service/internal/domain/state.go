package domain

type EventState string

const (
	StatePending   EventState = "PENDING"
	StatePublished EventState = "PUBLISHED"
	StateCanceled  EventState = "CANCELED"
)

func (s EventState) Valid() bool {
	return s == StatePending || s == StatePublished || s == StateCanceled
}

// StateAction is the optional lifecycle transition requested alongside a
// field update. Admin and initiator each have their own pair of actions.
type StateAction string

const (
	ActionPublishEvent StateAction = "PUBLISH_EVENT"
	ActionRejectEvent  StateAction = "REJECT_EVENT"
	ActionSendToReview StateAction = "SEND_TO_REVIEW"
	ActionCancelReview StateAction = "CANCEL_REVIEW"
)

func (a StateAction) AdminAction() bool {
	return a == ActionPublishEvent || a == ActionRejectEvent
}

func (a StateAction) InitiatorAction() bool {
	return a == ActionSendToReview || a == ActionCancelReview
}

func (a StateAction) Valid() bool {
	return a.AdminAction() || a.InitiatorAction()
}
