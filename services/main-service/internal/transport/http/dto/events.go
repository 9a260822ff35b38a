package dto

// LocationReq mirrors the event location on the wire.
type LocationReq struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewEventReq is the body of POST /users/{userId}/events. event_date uses the
// service-wide "yyyy-MM-dd HH:mm:ss" layout.
type NewEventReq struct {
	Title             string      `json:"title"`
	Annotation        string      `json:"annotation"`
	Description       string      `json:"description"`
	Category          string      `json:"category"`
	Location          LocationReq `json:"location"`
	EventDate         string      `json:"event_date"`
	ParticipantLimit  int         `json:"participant_limit"`
	RequestModeration *bool       `json:"request_moderation"`
}

// UpdateEventReq is shared by the initiator and admin PATCH endpoints; which
// state actions are legal depends on the endpoint.
type UpdateEventReq struct {
	Title             *string      `json:"title"`
	Annotation        *string      `json:"annotation"`
	Description       *string      `json:"description"`
	Category          *string      `json:"category"`
	Location          *LocationReq `json:"location"`
	EventDate         *string      `json:"event_date"`
	ParticipantLimit  *int         `json:"participant_limit"`
	RequestModeration *bool        `json:"request_moderation"`
	StateAction       *string      `json:"state_action"`
}

type EventResp struct {
	ID          int64  `json:"id"`
	InitiatorID int64  `json:"initiator_id"`
	Title       string `json:"title"`
	Annotation  string `json:"annotation"`
	Description string `json:"description"`
	Category    string `json:"category"`

	Location LocationReq `json:"location"`

	EventDate   string  `json:"event_date"`
	CreatedOn   string  `json:"created_on"`
	PublishedOn *string `json:"published_on,omitempty"`

	ParticipantLimit  int  `json:"participant_limit"`
	RequestModeration bool `json:"request_moderation"`
	ConfirmedRequests int  `json:"confirmed_requests"`

	Rating        int64 `json:"rating"`
	NumberOfLikes int64 `json:"number_of_likes"`
	Views         int64 `json:"views"`

	State string `json:"state"`
}
