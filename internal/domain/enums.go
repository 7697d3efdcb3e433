package domain

// InvoiceStatus represents the review lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSubmitted InvoiceStatus = "submitted"
	InvoiceStatusApproved  InvoiceStatus = "approved"
	InvoiceStatusRejected  InvoiceStatus = "rejected"
)

// ReviewAction is the decision taken on a submitted invoice.
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// Valid reports whether the action is one of the supported decisions.
func (a ReviewAction) Valid() bool {
	return a == ActionApprove || a == ActionReject
}
