package qbell

// Payload is the response body of the measurement route.
type Payload struct {
	Zeros int `json:"00"`
	Ones  int `json:"11"`
}

/*
Format keeps the two Bell outcomes and drops everything else. A missing
key reads as 0. The values are passed through as reported; nothing checks
that they add up to the shot count.
*/
func Format(counts Counts) Payload {
	return Payload{
		Zeros: counts.Get("00"),
		Ones:  counts.Get("11"),
	}
}

// Dropped returns the outcomes Format leaves out, with their counts.
func Dropped(counts Counts) Counts {
	dropped := make(Counts)

	for outcome, n := range counts {
		if outcome == "00" || outcome == "11" || n == 0 {
			continue
		}
		dropped[outcome] = n
	}

	return dropped
}
