package figure

import (
	gm "github.com/Faultbox/geosim/pkg/math"
)

// Pose is a rigid placement: position plus normalized orientation.
type Pose struct {
	Position    gm.Vec3
	Orientation gm.Quat
}

// NewPose builds a pose, normalizing the orientation.
func NewPose(pos gm.Vec3, rot gm.Quat) Pose {
	return Pose{Position: pos, Orientation: rot.Normalize()}
}

// PoseEuler builds a pose from XYZ Euler angles in radians.
func PoseEuler(pos gm.Vec3, x, y, z float64) Pose {
	return Pose{Position: pos, Orientation: gm.QuatFromEuler(x, y, z)}
}

// Matrix returns the model matrix of the pose.
func (p Pose) Matrix() gm.Mat4 {
	return gm.Compose(p.Position, p.Orientation)
}

// Normal returns the local +Z axis in world space.
func (p Pose) Normal() gm.Vec3 {
	return p.Orientation.Rotate(gm.UnitZ)
}

// Label is a text annotation anchored in a piece's local frame.
type Label struct {
	Text   string
	Offset gm.Vec3
}

// Piece is one rigid face or surface segment of a decomposed solid.
// Current is derived from Start, End and the figure progress.
type Piece struct {
	Geometry Geometry
	Start    Pose
	End      Pose
	Current  Pose
	Label    *Label
}

// GeometryID returns the stable geometry identifier of the piece.
func (p *Piece) GeometryID() string {
	return p.Geometry.ID
}

// Transform returns the model matrix of the current pose.
func (p *Piece) Transform() gm.Mat4 {
	return p.Current.Matrix()
}

// WorldTriangles returns the tessellation placed at the current pose.
func (p *Piece) WorldTriangles() []Triangle {
	m := p.Transform()
	tris := p.Geometry.Triangles()
	for i := range tris {
		for j := range tris[i] {
			tris[i][j] = m.TransformPoint(tris[i][j])
		}
	}
	return tris
}

// LabelPosition returns the world position of the label at the current
// pose. ok is false when the piece carries no label.
func (p *Piece) LabelPosition() (pos gm.Vec3, ok bool) {
	if p.Label == nil {
		return gm.Vec3{}, false
	}
	return p.Transform().TransformPoint(p.Label.Offset), true
}
