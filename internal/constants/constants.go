package constants

// Session
const (
	SessionCookieName  = "dashboard_session"
	ContextKeyUsername = "username"
)

// Input limits
const (
	MinUsernameLength  = 3
	MaxUsernameLength  = 50
	MaxTaskTitleLength = 200
	MaxNarrativeLength = 1000
)

// Analytics defaults
const (
	DefaultParticipationWindowDays = 30
	MaxParticipationWindowDays     = 90
	DefaultRecentCheckInLimit      = 10
)
