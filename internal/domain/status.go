package domain

// ReadingStatus describes where a book sits in the reading lifecycle.
// The progression NotReading → Planning → CurrentlyReading → Completed →
// Summarized is conventional, not enforced: any status may be set directly.
type ReadingStatus string

// Reading statuses in lifecycle order.
const (
	StatusNotReading       ReadingStatus = "not_reading"
	StatusPlanning         ReadingStatus = "planning"
	StatusCurrentlyReading ReadingStatus = "currently_reading"
	StatusCompleted        ReadingStatus = "completed"
	StatusSummarized       ReadingStatus = "summarized"
)

// Valid returns true if the status is a recognized value.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusNotReading, StatusPlanning, StatusCurrentlyReading, StatusCompleted, StatusSummarized:
		return true
	default:
		return false
	}
}

// Finished reports whether the book counts as read for statistics purposes.
func (s ReadingStatus) Finished() bool {
	return s == StatusCompleted || s == StatusSummarized
}

// DisplayName returns the human-readable name for the status.
func (s ReadingStatus) DisplayName() string {
	switch s {
	case StatusNotReading:
		return "Not Reading"
	case StatusPlanning:
		return "Planning"
	case StatusCurrentlyReading:
		return "Currently Reading"
	case StatusCompleted:
		return "Completed"
	case StatusSummarized:
		return "Summarized"
	default:
		return string(s)
	}
}

// BadgeClass returns the UI badge class for the status.
func (s ReadingStatus) BadgeClass() string {
	switch s {
	case StatusNotReading:
		return "badge-secondary"
	case StatusPlanning:
		return "badge-info"
	case StatusCurrentlyReading:
		return "badge-primary"
	case StatusCompleted:
		return "badge-success"
	case StatusSummarized:
		return "badge-dark"
	default:
		return "badge-secondary"
	}
}

// StatusInfo pairs a status value with its display metadata.
type StatusInfo struct {
	Value       ReadingStatus `json:"value"`
	DisplayName string        `json:"display_name"`
	BadgeClass  string        `json:"badge_class"`
}

// AllStatuses returns every reading status with display metadata, in
// lifecycle order.
func AllStatuses() []StatusInfo {
	statuses := []ReadingStatus{
		StatusNotReading,
		StatusPlanning,
		StatusCurrentlyReading,
		StatusCompleted,
		StatusSummarized,
	}

	infos := make([]StatusInfo, len(statuses))
	for i, s := range statuses {
		infos[i] = StatusInfo{
			Value:       s,
			DisplayName: s.DisplayName(),
			BadgeClass:  s.BadgeClass(),
		}
	}
	return infos
}
