package domain

// Calendar describes one remote calendar as shown in the host's calendar
// list. Descriptors are ephemeral: recomputed on every list request and
// never persisted locally.
type Calendar struct {
	// ID is the namespaced identifier "<namespace>:<remoteID>".
	ID string `json:"id"`
	// Name is the calendar's display name.
	Name string `json:"name"`
	// Color is the calendar colour as a hex string without the leading '#'.
	Color string `json:"color,omitempty"`
	// Editable is always false: writes never go through this driver,
	// regardless of the access role the provider reports.
	Editable bool `json:"editable"`
	// Active reports whether the user has this calendar selected for
	// display. True for all calendars when no selection preference exists.
	Active bool `json:"active"`
	// Owner is the label of the owning account, the remote calendar id.
	Owner string `json:"owner,omitempty"`
}

// CalendarID builds the namespaced calendar identifier from a remote id.
func CalendarID(remoteID string) string {
	return Namespace + ":" + remoteID
}
