package figure

// Interpolate blends two poses: linear in position, shortest-arc slerp in
// orientation. t == 0 and t == 1 return start and end exactly.
func Interpolate(start, end Pose, t float64) Pose {
	switch t {
	case 0:
		return start
	case 1:
		return end
	}
	return Pose{
		Position:    start.Position.Lerp(end.Position, t),
		Orientation: start.Orientation.Slerp(end.Orientation, t),
	}
}

// Apply sets the current pose of every piece for the given progress.
// Callers keep progress within [0,1].
func Apply(pieces []Piece, progress float64) {
	for i := range pieces {
		p := &pieces[i]
		p.Current = Interpolate(p.Start, p.End, progress)
	}
}
