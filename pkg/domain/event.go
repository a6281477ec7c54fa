package domain

import "time"

// event names published and handled by the service
const (
	EventUserCreated = "app/user.created"
	EventUserDeleted = "app/user.deleted"
	EventDailyNews   = "app/send.daily.news"
)

// Event is a named notification of a state change with its payload.
// The shape of Data depends on Name.
type Event struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
	Time time.Time      `json:"ts"`
}

// Result is the uniform outcome of an account operation.
// Callers branch on Success only.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Ok makes a successful result
func Ok(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail makes a failed result with the given message
func Fail(msg string) Result {
	return Result{Success: false, Error: msg}
}
