package game

// RunStats are counters a World accumulates over its lifetime.
type RunStats struct {
	ShotsFired         int
	Rearranges         int
	Kills              int
	Pickups            int
	ObstaclesDestroyed int
	DamageTaken        float64
}

type RunOutcome int

const (
	OutcomeInconclusive RunOutcome = iota
	OutcomeSurvived
	OutcomeDominant
	OutcomeDied
)

func (o RunOutcome) String() string {
	switch o {
	case OutcomeSurvived:
		return "survived"
	case OutcomeDominant:
		return "dominant"
	case OutcomeDied:
		return "died"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

type RunOutcomeReason struct {
	Outcome      RunOutcome
	Ticks        int
	Elapsed      float64
	Kills        int
	EnemiesAlive int
	PlayerHealth float64
	Stats        RunStats
	Description  string
}

// dominantKillsPerMinute is the kill rate above which an unhurt run counts
// as dominant.
const dominantKillsPerMinute = 10.0

// DetermineRunOutcome classifies a finished or paused run.
func DetermineRunOutcome(w *World) RunOutcomeReason {
	st := w.Stats()
	reason := RunOutcomeReason{
		Ticks:        w.Tick(),
		Elapsed:      w.Elapsed(),
		Kills:        st.Kills,
		EnemiesAlive: len(w.Enemies()),
		PlayerHealth: w.Player().Health(),
		Stats:        st,
	}

	if w.GameOver() {
		reason.Outcome = OutcomeDied
		if st.Kills == 0 {
			reason.Description = "died_without_kills"
		} else {
			reason.Description = "died_after_kills"
		}
		return reason
	}

	if st.Kills == 0 {
		reason.Outcome = OutcomeInconclusive
		reason.Description = "inconclusive_no_engagement"
		return reason
	}

	perMinute := 0.0
	if reason.Elapsed > 0 {
		perMinute = float64(st.Kills) / reason.Elapsed * 60
	}
	if perMinute >= dominantKillsPerMinute && w.Player().HealthFraction() >= 0.5 {
		reason.Outcome = OutcomeDominant
		reason.Description = "dominant_high_kill_rate"
		return reason
	}

	reason.Outcome = OutcomeSurvived
	if w.Player().HealthFraction() < 0.25 {
		reason.Description = "survived_badly_hurt"
	} else {
		reason.Description = "survived"
	}
	return reason
}
