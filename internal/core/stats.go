package core

// Stats summarises a single generation. It is recomputed every generation.
type Stats struct {
	Live   int `json:"live"`
	Deaths int `json:"deaths"`
	Births int `json:"births"`
}

// Diff computes the statistics of the transition prev -> next. Both grids
// must have the same dimensions.
func Diff(prev, next *Grid) Stats {
	var s Stats
	a, b := prev.Cells(), next.Cells()
	for i := FieldAlive; i < len(b); i += NumFields {
		was, is := a[i] != 0, b[i] != 0
		if is {
			s.Live++
		}
		switch {
		case was && !is:
			s.Deaths++
		case !was && is:
			s.Births++
		}
	}
	return s
}

// Add accumulates s and o. Used to merge per-band partial results.
func (s Stats) Add(o Stats) Stats {
	return Stats{Live: s.Live + o.Live, Deaths: s.Deaths + o.Deaths, Births: s.Births + o.Births}
}
