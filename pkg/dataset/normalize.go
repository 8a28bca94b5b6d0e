package dataset

// Scaler maps every feature to [0, 1] using the range seen when fitting.
type Scaler struct {
	Min []float64
	Max []float64
}

func FitScaler(d Dataset) Scaler {
	width := d.NumFeatures()
	s := Scaler{Min: make([]float64, width), Max: make([]float64, width)}
	for i, row := range d.Features {
		for j, v := range row {
			if i == 0 || v < s.Min[j] {
				s.Min[j] = v
			}
			if i == 0 || v > s.Max[j] {
				s.Max[j] = v
			}
		}
	}
	return s
}

// Apply returns a scaled copy of d. Values outside the fitted range are
// clamped; constant features map to 0.5.
func (s Scaler) Apply(d Dataset) Dataset {
	out := Dataset{
		Features: make([][]float64, len(d.Features)),
		Labels:   append([]int(nil), d.Labels...),
	}
	for i, row := range d.Features {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = normalizeValue(v, s.Min[j], s.Max[j])
		}
		out.Features[i] = scaled
	}
	return out
}

func normalizeValue(value, min, max float64) float64 {
	if max > min {
		normalized := (value - min) / (max - min)
		return clamp(normalized, 0, 1)
	}
	return 0.5
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
