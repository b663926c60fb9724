package naver

import "strings"

// StatusCode is the vendor booking status. Codes outside the known set are
// kept as-is so new upstream values do not break decoding.
type StatusCode string

const (
	StatusCancel    StatusCode = "RC04"
	StatusCompleted StatusCode = "RC08"
	StatusReserved  StatusCode = "RC05"
)

// AllStatuses is the filter used by the fetch trigger.
var AllStatuses = []StatusCode{StatusCancel, StatusCompleted, StatusReserved}

func (s StatusCode) String() string {
	switch s {
	case StatusCancel:
		return "Cancel"
	case StatusCompleted:
		return "Completed"
	case StatusReserved:
		return "Reserved"
	}
	return string(s)
}

// joinStatuses renders the queryType variable, e.g. "RC04,RC08,RC05".
func joinStatuses(codes []StatusCode) string {
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ",")
}
