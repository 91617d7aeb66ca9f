package screen

// Status is the loading state of a screen
type Status int

// Screen statuses
const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

// String returns the lowercase status name
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
