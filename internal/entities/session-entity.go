package entities

import "time"

// Session - серверная часть сессии панели, хранится в Redis под своим ID.
type Session struct {
	ID           string    `json:"id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         User      `json:"user"`
	CreatedAt    time.Time `json:"created_at"`
}
