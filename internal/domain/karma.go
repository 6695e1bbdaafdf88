package domain

// KarmaAction is a user action that earns karma points.
type KarmaAction string

const (
	KarmaProfileComplete  KarmaAction = "profile-complete"
	KarmaSessionCompleted KarmaAction = "session-completed"
	KarmaMessageSent      KarmaAction = "message-sent"
	KarmaSkillAdded       KarmaAction = "skill-added"
	KarmaGoalSet          KarmaAction = "goal-set"
)

// KarmaPoints is the static point value of each action.
var KarmaPoints = map[KarmaAction]int{
	KarmaProfileComplete:  50,
	KarmaSessionCompleted: 30,
	KarmaMessageSent:      5,
	KarmaSkillAdded:       10,
	KarmaGoalSet:          15,
}

// KarmaTally counts actions for a total karma calculation.
type KarmaTally struct {
	ProfileCompleted  bool `json:"profileCompleted"`
	SessionsCompleted int  `json:"sessionsCompleted"`
	MessagesSent      int  `json:"messagesSent"`
	SkillsAdded       int  `json:"skillsAdded"`
	GoalsSet          int  `json:"goalsSet"`
}

// Total returns the karma earned by the tally. Negative counts earn nothing.
func (t KarmaTally) Total() int {
	total := 0
	if t.ProfileCompleted {
		total += KarmaPoints[KarmaProfileComplete]
	}
	total += KarmaPoints[KarmaSessionCompleted] * max(t.SessionsCompleted, 0)
	total += KarmaPoints[KarmaMessageSent] * max(t.MessagesSent, 0)
	total += KarmaPoints[KarmaSkillAdded] * max(t.SkillsAdded, 0)
	total += KarmaPoints[KarmaGoalSet] * max(t.GoalsSet, 0)
	return total
}
