package lattice

// Label classifies the dynamics of a lattice node. It is fixed once the
// geometry has been defined.
type Label uint8

const (
	// Fluid nodes undergo BGK collision.
	Fluid Label = iota
	// BounceBack nodes are no-slip walls which reflect incoming populations.
	BounceBack
	// Inert nodes have no dynamics at all.
	Inert
	EndLabel
)

var labelNames = [EndLabel]string{"Fluid", "BounceBack", "Inert"}

func (l Label) String() string {
	if l >= EndLabel {
		return "Unknown"
	}
	return labelNames[l]
}

// LabelFromGeometry converts a geometry value into a Label: 0 is fluid, 1 is
// a bounce-back solid and 2 is an inert solid. ok is false for any other
// value.
func LabelFromGeometry(v int) (l Label, ok bool) {
	switch v {
	case 0:
		return Fluid, true
	case 1:
		return BounceBack, true
	case 2:
		return Inert, true
	}
	return Fluid, false
}

// IsSolid returns true for labels which do not carry fluid.
func (l Label) IsSolid() bool { return l != Fluid }
