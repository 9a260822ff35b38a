package dto

import (
	"time"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func ToEventResp(e *domain.Event, views int64) EventResp {
	resp := EventResp{
		ID:          e.ID,
		InitiatorID: e.InitiatorID,
		Title:       e.Title,
		Annotation:  e.Annotation,
		Description: e.Description,
		Category:    e.Category,
		Location:    LocationReq{Lat: e.Location.Lat, Lon: e.Location.Lon},

		EventDate: FormatTime(e.EventDate),
		CreatedOn: FormatTime(e.CreatedOn),

		ParticipantLimit:  e.ParticipantLimit,
		RequestModeration: e.RequestModeration,
		ConfirmedRequests: e.ConfirmedRequests,

		Rating:        e.Rating,
		NumberOfLikes: e.NumberOfLikes,
		Views:         views,

		State: string(e.State),
	}
	if e.PublishedOn != nil {
		s := FormatTime(*e.PublishedOn)
		resp.PublishedOn = &s
	}
	return resp
}

func ToEventResps(events []*domain.Event, views map[int64]int64) []EventResp {
	out := make([]EventResp, 0, len(events))
	for _, e := range events {
		out = append(out, ToEventResp(e, views[e.ID]))
	}
	return out
}

func ToUserResp(u *domain.User) UserResp {
	return UserResp{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Rating: u.Rating,
	}
}

func ToUserResps(users []*domain.User) []UserResp {
	out := make([]UserResp, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResp(u))
	}
	return out
}

func ToLikeResp(l *domain.Like) LikeResp {
	return LikeResp{
		ID:        l.ID,
		UserID:    l.UserID,
		EventID:   l.EventID,
		IsLike:    l.IsLike,
		ClickedOn: FormatTime(l.ClickedOn),
	}
}

func ToLikeResps(likes []*domain.Like) []LikeResp {
	out := make([]LikeResp, 0, len(likes))
	for _, l := range likes {
		out = append(out, ToLikeResp(l))
	}
	return out
}

func ToRequestResp(r *domain.ParticipationRequest) RequestResp {
	return RequestResp{
		ID:          r.ID,
		EventID:     r.EventID,
		RequesterID: r.RequesterID,
		Status:      string(r.Status),
		Created:     FormatTime(r.Created),
	}
}

func ToRequestResps(reqs []*domain.ParticipationRequest) []RequestResp {
	out := make([]RequestResp, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ToRequestResp(r))
	}
	return out
}
