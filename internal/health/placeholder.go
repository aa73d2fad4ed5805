package health

// placeholderPillar stands in for pillars that need factsheet or fundamental
// data the holdings do not carry. It always reports the neutral score with
// status data_unavailable.
type placeholderPillar struct {
	name    PillarName
	weight  float64
	neutral int
	reason  string
}

func (p placeholderPillar) Name() PillarName { return p.name }
func (p placeholderPillar) Weight() float64  { return p.weight }

func (p placeholderPillar) Calculate(Input) PillarScore {
	return newPillarScore(p.name, p.weight, StatusDataUnavailable, []Deduction{{
		Reason:   p.reason,
		Impact:   float64(100 - p.neutral),
		Severity: SeverityInfo,
		Category: "data_unavailable",
	}})
}
