package types

const (
	REPORT_POINTS_LOW      = 10
	REPORT_POINTS_MODERATE = 15
	REPORT_POINTS_SEVERE   = 20

	CLEANUP_POINTS_PER_HOUR   = 5
	VOLUNTEER_POINTS_PER_HOUR = 3
)

type PointsConfig struct {
	ReportSeverityPoints   map[string]int
	CleanupPointsPerHour   int
	VolunteerPointsPerHour int
}

func GetPointsConfig() PointsConfig {
	return PointsConfig{
		ReportSeverityPoints: map[string]int{
			"low":      REPORT_POINTS_LOW,
			"moderate": REPORT_POINTS_MODERATE,
			"severe":   REPORT_POINTS_SEVERE,
		},
		CleanupPointsPerHour:   CLEANUP_POINTS_PER_HOUR,
		VolunteerPointsPerHour: VOLUNTEER_POINTS_PER_HOUR,
	}
}

// ReportPoints returns the points awarded for submitting a report of the
// given severity. Unknown severities earn the low tier.
func ReportPoints(severity string) int {
	if pts, ok := GetPointsConfig().ReportSeverityPoints[severity]; ok {
		return pts
	}
	return REPORT_POINTS_LOW
}

// CleanupPoints returns the points for participating in a cleanup drive of
// the given duration.
func CleanupPoints(hours int) int {
	if hours < 1 {
		hours = 1
	}
	return hours * CLEANUP_POINTS_PER_HOUR
}

// VolunteerPoints returns the points for logged volunteer hours.
func VolunteerPoints(hours int) int {
	if hours < 0 {
		return 0
	}
	return hours * VOLUNTEER_POINTS_PER_HOUR
}

// EcoHeroLevel maps a cumulative impact score onto the public level label
// shown on profiles and the leaderboard.
func EcoHeroLevel(impactScore int) string {
	switch {
	case impactScore >= 1000:
		return "Eco Legend"
	case impactScore >= 500:
		return "Eco Hero"
	case impactScore >= 200:
		return "Eco Warrior"
	case impactScore >= 50:
		return "Contributor"
	default:
		return "Beginner"
	}
}
