package domain

import "time"

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestConfirmed RequestStatus = "CONFIRMED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestCanceled  RequestStatus = "CANCELED"
)

func (s RequestStatus) Valid() bool {
	return s == RequestPending || s == RequestConfirmed || s == RequestRejected || s == RequestCanceled
}

// ParticipationRequest is a user's request to join an event. One request at
// most per (requester, event).
type ParticipationRequest struct {
	ID          int64
	EventID     int64
	RequesterID int64
	Status      RequestStatus
	Created     time.Time
}
