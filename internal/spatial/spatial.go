// Package spatial orders layers by canvas position so grid rows appear in
// the order a user scans them on screen.
package spatial

import (
	"math"
	"sort"

	"github.com/namegrid/namegrid/internal/layer"
)

// Direction selects the ordering policy for Sort.
type Direction string

const (
	// LeftToRight orders by x ascending, ties by y ascending.
	LeftToRight Direction = "left-to-right"
	// RightToLeft orders by x descending, ties by y ascending.
	RightToLeft Direction = "right-to-left"
	// BottomToTop orders by y descending, ties by x ascending.
	BottomToTop Direction = "bottom-to-top"
	// TopToBottom is column-major: x buckets ascending, y ascending within.
	TopToBottom Direction = "top-to-bottom"
	// ReadingOrder is row-major: y buckets ascending, x ascending within,
	// like reading a page.
	ReadingOrder Direction = "reading-order"
)

// Directions lists every policy in the order the UI cycles through them.
var Directions = []Direction{ReadingOrder, LeftToRight, RightToLeft, TopToBottom, BottomToTop}

// assumedExtent stands in for the average layer size when bucketing.
// True extents are not always reported by hosts, so a constant proxy is
// used; selections mixing very large and very small layers may bucket
// unintuitively (known heuristic limitation).
const (
	assumedExtent    = 50.0
	minimumThreshold = 10.0
)

// bucketThreshold is the bucket width for the row/column-major policies.
// The floor keeps near-aligned layers together despite sub-pixel jitter.
func bucketThreshold(n int) float64 {
	if n < 2 {
		return minimumThreshold
	}
	if assumedExtent < minimumThreshold {
		return minimumThreshold
	}
	return assumedExtent
}

// Sort returns the layers in the order given by direction. The input is
// not modified. Ordering is total and deterministic: ties on the primary
// and secondary axes break by ID.
func Sort(layers []layer.Ref, direction Direction) []layer.Ref {
	out := make([]layer.Ref, len(layers))
	copy(out, layers)
	threshold := bucketThreshold(len(out))

	var less func(a, b layer.Ref) bool
	switch direction {
	case LeftToRight:
		less = func(a, b layer.Ref) bool {
			if a.X != b.X {
				return a.X < b.X
			}
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			return a.ID < b.ID
		}
	case RightToLeft:
		less = func(a, b layer.Ref) bool {
			if a.X != b.X {
				return a.X > b.X
			}
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			return a.ID < b.ID
		}
	case BottomToTop:
		less = func(a, b layer.Ref) bool {
			if a.Y != b.Y {
				return a.Y > b.Y
			}
			if a.X != b.X {
				return a.X < b.X
			}
			return a.ID < b.ID
		}
	case TopToBottom:
		less = func(a, b layer.Ref) bool {
			ba, bb := bucket(a.X, threshold), bucket(b.X, threshold)
			if ba != bb {
				return ba < bb
			}
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			return a.ID < b.ID
		}
	default: // ReadingOrder
		less = func(a, b layer.Ref) bool {
			ba, bb := bucket(a.Y, threshold), bucket(b.Y, threshold)
			if ba != bb {
				return ba < bb
			}
			if a.X != b.X {
				return a.X < b.X
			}
			return a.ID < b.ID
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func bucket(v, threshold float64) int {
	return int(math.Floor(v / threshold))
}
