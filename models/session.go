package models

// Session struct for storing session data in redis
type Session struct {
	Token        string `json:"session_token"`
	UserID       int    `json:"user_id"`
	Username     string `json:"username"`
	CreatedAt    string `json:"created_at"`
	LastActivity string `json:"last_activity"`
}
