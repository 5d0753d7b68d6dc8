package onboarding

// ConnectionStatus tracks the email integration step.
type ConnectionStatus string

const (
	ConnectionNotStarted ConnectionStatus = "not_started"
	ConnectionConnecting ConnectionStatus = "connecting"
	ConnectionSuccess    ConnectionStatus = "success"
	ConnectionFailed     ConnectionStatus = "failed"
)

func (s ConnectionStatus) IsValid() bool {
	switch s {
	case ConnectionNotStarted, ConnectionConnecting, ConnectionSuccess, ConnectionFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is reachable from s:
// not_started -> connecting -> success|failed, and failed -> not_started (retry).
func (s ConnectionStatus) CanTransitionTo(next ConnectionStatus) bool {
	switch s {
	case ConnectionNotStarted:
		return next == ConnectionConnecting
	case ConnectionConnecting:
		return next == ConnectionSuccess || next == ConnectionFailed
	case ConnectionFailed:
		return next == ConnectionNotStarted
	}
	return false
}

func (s ConnectionStatus) IsTerminal() bool {
	return s == ConnectionSuccess || s == ConnectionFailed
}
