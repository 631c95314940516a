package fmea

// Assess runs the full pipeline: validation, scoring, aggregation and DoE
// selection. When validation fails it returns the ValidationErrors and a
// nil Result; nothing is computed for an invalid run.
func Assess(entries []RawEntry) (*Result, error) {
	run, err := Validate(entries)
	if err != nil {
		return nil, err
	}

	scored := ScoreAll(run)
	return &Result{
		NumVars:   run.NumVars,
		Variables: scored,
		DoE:       SelectDoE(scored),
		Heatmap:   Aggregate(scored),
	}, nil
}
