package audit

import "fmt"

// UserCreateEvent represents a user registration
type UserCreateEvent struct {
	UserID       string
	Username     string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e UserCreateEvent) MessageID() string {
	return "user-create"
}

func (e UserCreateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("user %s registered", e.Username)
	}
	msg := fmt.Sprintf("registration of user %s failed", e.Username)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e UserCreateEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e UserCreateEvent) Facility() int {
	return FacilityAuth
}

func (e UserCreateEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "create",
			"result":    result(e.Success),
		},
	}
	if e.UserID != "" {
		sd[SDIDSubject]["user_id"] = e.UserID
	}
	return sd
}
