package models

// Status is the lifecycle state of an asset or migration item.
type Status string

const (
	StatusPending Status = "Pending"
	StatusRunning Status = "Running"
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"

	// Display-only states carried through from discovery payloads.
	// The migration run never produces these.
	StatusReady      Status = "Ready"
	StatusDeprecated Status = "Deprecated"
	StatusQueued     Status = "Queued"
	StatusCancelled  Status = "Cancelled"
	StatusSkipped    Status = "Skipped"
	StatusUnknown    Status = "Unknown"
)

// Terminal reports whether the status ends an item's part in a run.
// A terminal item only changes again via an explicit user retry.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}
