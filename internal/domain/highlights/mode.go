package highlights

import "strings"

// DisabledCredential switches automated selection off even when a key is set.
const DisabledCredential = "DISABLED"

type Mode int

const (
	ModeManual Mode = iota
	ModeAutomated
)

func (m Mode) String() string {
	switch m {
	case ModeAutomated:
		return "automated"
	default:
		return "manual"
	}
}

// DetermineMode picks the selection mode from the service credential.
// Absent, blank and disabled credentials select manual entry.
func DetermineMode(credential string) Mode {
	c := strings.TrimSpace(credential)
	if c == "" || strings.EqualFold(c, DisabledCredential) {
		return ModeManual
	}
	return ModeAutomated
}
