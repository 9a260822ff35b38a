package dto

type UserResp struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Rating float64 `json:"rating"`
}

type NewUserReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LikeResp struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	EventID   int64  `json:"event_id"`
	IsLike    bool   `json:"is_like"`
	ClickedOn string `json:"clicked_on"`
}

type RequestResp struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event_id"`
	RequesterID int64  `json:"requester_id"`
	Status      string `json:"status"`
	Created     string `json:"created"`
}
