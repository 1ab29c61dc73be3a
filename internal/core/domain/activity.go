package domain

import "time"

// Auth activity actions recorded in the trail.
const (
	ActionRegister     = "register"
	ActionLogin        = "login"
	ActionDemoLogin    = "demo_login"
	ActionLogout       = "logout"
	ActionShopsUpdated = "shops_updated"
)

// ActivityEvent is one entry in the auth activity trail. Recording is
// fire-and-forget; losing an event never fails the user-facing operation.
type ActivityEvent struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Action   string    `json:"action"`
	At       time.Time `json:"at"`
}
