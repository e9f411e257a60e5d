package valueobject

import "fmt"

// EntryType is the lifecycle event a transaction entry records.
type EntryType struct {
	value string
}

var (
	EntryAuthorization = EntryType{"AUTHORIZATION"}
	EntryCapture       = EntryType{"CAPTURE"}
	EntryVoid          = EntryType{"VOID"}
	EntryRefund        = EntryType{"REFUND"}
	EntryReturn        = EntryType{"RETURN"}
)

var validEntryTypes = map[string]EntryType{
	"AUTHORIZATION": EntryAuthorization,
	"CAPTURE":       EntryCapture,
	"VOID":          EntryVoid,
	"REFUND":        EntryRefund,
	"RETURN":        EntryReturn,
}

// NewEntryType validates and creates an EntryType from a string.
func NewEntryType(s string) (EntryType, error) {
	if t, ok := validEntryTypes[s]; ok {
		return t, nil
	}
	return EntryType{}, fmt.Errorf("invalid transaction entry type: %q", s)
}

// String returns the string representation of the entry type.
func (t EntryType) String() string { return t.value }

// IsZero returns true if the entry type is uninitialized.
func (t EntryType) IsZero() bool { return t.value == "" }

// EntryStatus is the state of a transaction entry. Entries start PENDING and
// resolve to exactly one terminal status; terminal states never transition.
type EntryStatus struct {
	value string
}

var (
	StatusPending  = EntryStatus{"PENDING"}
	StatusAccepted = EntryStatus{"ACCEPTED"}
	StatusRejected = EntryStatus{"REJECTED"}
	StatusReview   = EntryStatus{"REVIEW"}
)

var validEntryStatuses = map[string]EntryStatus{
	"PENDING":  StatusPending,
	"ACCEPTED": StatusAccepted,
	"REJECTED": StatusRejected,
	"REVIEW":   StatusReview,
}

// NewEntryStatus validates and creates an EntryStatus from a string.
func NewEntryStatus(s string) (EntryStatus, error) {
	if st, ok := validEntryStatuses[s]; ok {
		return st, nil
	}
	return EntryStatus{}, fmt.Errorf("invalid transaction entry status: %q", s)
}

// String returns the string representation of the entry status.
func (s EntryStatus) String() string { return s.value }

// IsZero returns true if the entry status is uninitialized.
func (s EntryStatus) IsZero() bool { return s.value == "" }

// IsTerminal returns true once the entry has resolved (ACCEPTED, REJECTED or
// REVIEW).
func (s EntryStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusReview
}

// StatusDetail qualifies an entry status with the reason it was reached.
type StatusDetail struct {
	value string
}

var (
	DetailSuccessful           = StatusDetail{"SUCCESSFUL"}
	DetailReviewNeeded         = StatusDetail{"REVIEW_NEEDED"}
	DetailProcessorDecline     = StatusDetail{"PROCESSOR_DECLINE"}
	DetailCommunicationProblem = StatusDetail{"COMMUNICATION_PROBLEM"}
	DetailInvalidRequest       = StatusDetail{"INVALID_REQUEST"}
)

// String returns the string representation of the status detail.
func (d StatusDetail) String() string { return d.value }

// IsZero returns true if the status detail is uninitialized.
func (d StatusDetail) IsZero() bool { return d.value == "" }

var validStatusDetails = map[string]StatusDetail{
	"SUCCESSFUL":            DetailSuccessful,
	"REVIEW_NEEDED":         DetailReviewNeeded,
	"PROCESSOR_DECLINE":     DetailProcessorDecline,
	"COMMUNICATION_PROBLEM": DetailCommunicationProblem,
	"INVALID_REQUEST":       DetailInvalidRequest,
}

// NewStatusDetail validates and creates a StatusDetail from a string.
func NewStatusDetail(s string) (StatusDetail, error) {
	if d, ok := validStatusDetails[s]; ok {
		return d, nil
	}
	return StatusDetail{}, fmt.Errorf("invalid transaction entry status detail: %q", s)
}
