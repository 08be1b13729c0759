package farm

// LoadProgress counts model loads requested and completed.
type LoadProgress struct {
	Loaded int
	Total  int
}

// Percent is Loaded/Total as a percentage; nothing requested counts as done.
func (p LoadProgress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Loaded) / float64(p.Total) * 100
}

func (p LoadProgress) Finished() bool {
	return p.Loaded >= p.Total
}
