package audit

import "fmt"

//go:generate go run github.com/dmarkham/enumer -type Operation -trimprefix Operation -transform lower -output operation.gen.go

// Operation is a mutation applied to a collection document
type Operation int

const (
	OperationCreate Operation = iota
	OperationUpdate
	OperationDelete
)

var pastTense = map[Operation]string{
	OperationCreate: "created",
	OperationUpdate: "updated",
	OperationDelete: "deleted",
}

// DocumentEvent represents a mutation of a resource collection
type DocumentEvent struct {
	// UserID is empty for anonymous callers
	UserID       string
	ClientIP     string
	Operation    Operation
	Collection   string
	DocumentID   string
	Success      bool
	ErrorMessage string
}

func (e DocumentEvent) MessageID() string {
	return "document"
}

func (e DocumentEvent) actor() string {
	if e.UserID == "" {
		return "anonymous"
	}
	return e.UserID
}

func (e DocumentEvent) Message() string {
	if e.Success {
		verb, ok := pastTense[e.Operation]
		if !ok {
			verb = e.Operation.String()
		}
		return fmt.Sprintf("%s %s %s/%s", e.actor(), verb, e.Collection, e.DocumentID)
	}
	msg := fmt.Sprintf("%s failed to %s %s/%s", e.actor(), e.Operation, e.Collection, e.DocumentID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e DocumentEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e DocumentEvent) Facility() int {
	return FacilityLocal0
}

func (e DocumentEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.actor(),
		},
		SDIDSubject: {
			"collection": e.Collection,
			"id":         e.DocumentID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation.String(),
			"result":    result(e.Success),
		},
	}
}
