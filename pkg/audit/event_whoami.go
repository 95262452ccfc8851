package audit

import "fmt"

// WhoamiEvent represents a GET /users/me call
type WhoamiEvent struct {
	UserID   string
	Username string
	ClientIP string
	Success  bool
}

func (e WhoamiEvent) MessageID() string {
	return "identity-check"
}

func (e WhoamiEvent) Message() string {
	return fmt.Sprintf("%s checked its identity", e.Username)
}

func (e WhoamiEvent) Severity() Severity {
	return severity(e.Success)
}

func (e WhoamiEvent) Facility() int {
	return FacilityAuth
}

func (e WhoamiEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"user_id": e.UserID,
		},
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "check",
			"result":    result(e.Success),
		},
	}
}
