package domain

import "time"

// Audit actions recorded by the intake pipeline and moderation endpoints.
// Field-validation failures are deliberately not audited (too noisy).
const (
	AuditSubmissionAccepted = "submission_accepted"
	AuditSpamDetected       = "spam_detected"
	AuditDuplicateRejected  = "duplicate_rejected"
	AuditStatusUpdated      = "status_updated"
	AuditApprovalUpdated    = "approval_updated"
	AuditRecordDeleted      = "record_deleted"
	AuditRecordCreated      = "record_created"
	AuditRecordUpdated      = "record_updated"
)

// AuditEvent is one entry in the operational audit trail. Actor is the
// authenticated admin email for moderation actions and empty for anonymous
// public submissions.
type AuditEvent struct {
	Kind         string    `bson:"kind"`    // "contact", "testimonial", "project"
	Action       string    `bson:"action"`
	SubmissionID int64     `bson:"submission_id,omitempty"`
	Actor        string    `bson:"actor,omitempty"`
	Detail       string    `bson:"detail,omitempty"`
	Timestamp    time.Time `bson:"timestamp"`
}
