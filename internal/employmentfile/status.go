package employmentfile

// Status is the employment state of a file. Transitions are restricted to
// the table below; lifecycle code must consult CanTransitionTo instead of
// comparing strings inline.
type Status string

const (
	StatusActive      Status = "ACTIVE"
	StatusLicense     Status = "LICENSE"
	StatusAdminPermit Status = "ADMIN_PERMIT"
	StatusDisengaged  Status = "DISENGAGED"
)

var transitions = map[Status]map[Status]bool{
	StatusActive: {
		StatusLicense:     true,
		StatusAdminPermit: true,
		StatusDisengaged:  true,
	},
	StatusLicense:     {StatusActive: true},
	StatusAdminPermit: {StatusActive: true},
	// Reactivation is the only way out of DISENGAGED.
	StatusDisengaged: {StatusActive: true},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransitionTo(to Status) bool {
	return transitions[s][to]
}

// OnLeave reports whether the worker is currently on a license or an
// administrative permit. A worker on leave cannot be disengaged.
func (s Status) OnLeave() bool {
	return s == StatusLicense || s == StatusAdminPermit
}

func ParseStatus(v string) (Status, bool) {
	s := Status(v)
	return s, s.Valid()
}
