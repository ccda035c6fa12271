package core

// Period selector tokens accepted by the analytics API.
const (
	PeriodOneMonth    = "1month"
	PeriodThreeMonths = "3months"
	PeriodSixMonths   = "6months"
	PeriodOneYear     = "1year"
)

// PeriodRange resolves a coarse period selector to an explicit calendar
// window ending at the reference date. Unrecognized tokens fall back to the
// six-month default instead of failing; callers that need strictness must
// validate the token themselves. See DESIGN.md for the rationale.
func PeriodRange(token string, now Date) (from, to Date) {
	to = now
	switch token {
	case PeriodOneMonth:
		from = DateOf(now.AddDate(0, -1, 0))
	case PeriodThreeMonths:
		from = DateOf(now.AddDate(0, -3, 0))
	case PeriodOneYear:
		from = DateOf(now.AddDate(-1, 0, 0))
	case PeriodSixMonths:
		fallthrough
	default:
		from = DateOf(now.AddDate(0, -6, 0))
	}
	return from, to
}
