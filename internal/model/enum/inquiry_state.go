package enum

// InquiryState is the lifecycle state of a customer inquiry.
// RECEIVED -> QUOTED -> DONE is the quote-and-confirm path; REJECTED and
// CUSTOMER_REJECTED are reserved terminal states with no transitions.
type InquiryState uint8

const (
	_inquiry_state_beg InquiryState = iota
	InquiryReceived
	InquiryQuoted
	InquiryDone
	InquiryRejected
	InquiryCustomerRejected
	_inquiry_state_end
)

func (s InquiryState) IsAvailable() bool {
	return s > _inquiry_state_beg && s < _inquiry_state_end
}

func (s InquiryState) String() string {
	switch s {
	case InquiryReceived:
		return "RECEIVED"
	case InquiryQuoted:
		return "QUOTED"
	case InquiryDone:
		return "DONE"
	case InquiryRejected:
		return "REJECTED"
	case InquiryCustomerRejected:
		return "CUSTOMER_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// ParseInquiryState maps input text to an InquiryState.
func ParseInquiryState(s string) (InquiryState, bool) {
	switch s {
	case "RECEIVED":
		return InquiryReceived, true
	case "QUOTED":
		return InquiryQuoted, true
	case "DONE":
		return InquiryDone, true
	case "REJECTED":
		return InquiryRejected, true
	case "CUSTOMER_REJECTED":
		return InquiryCustomerRejected, true
	default:
		return 0, false
	}
}
