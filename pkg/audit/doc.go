// Package audit provides audit logging for swapi operations.
//
// Security-relevant operations (authentication attempts, identity checks,
// account creation, password changes and document mutations) are written as
// RFC5424 syslog lines with structured data to stdout. When
// AUDIT_DATABASE_URL is set the same messages are also persisted to the
// messages table.
//
// # Usage
//
//	audit.Log(audit.AuthenticateEvent{
//	    Username: "luke",
//	    ClientIP: r.RemoteAddr,
//	    Success:  true,
//	})
//
// Audit logging is on unless SWAPI_AUDIT_ENABLED=false.
package audit
