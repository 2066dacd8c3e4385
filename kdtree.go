package glyphcast

import (
	"math"
	"sort"
)

// colorNode is a node in a kd-tree over RGB colors.
type colorNode struct {
	Color       RGB
	Left, Right *colorNode
	SplitAxis   int
}

// buildKDTree constructs a kd-tree from a list of colors. Each level
// splits on the axis with the largest variance among the colors that
// reach it. The input slice is reordered in place.
func buildKDTree(colors []RGB) *colorNode {
	if len(colors) == 0 {
		return nil
	}

	axis := chooseSplitAxis(colors)
	sort.Slice(colors, func(i, j int) bool {
		return colorComponent(colors[i], axis) < colorComponent(colors[j], axis)
	})

	median := len(colors) / 2
	return &colorNode{
		Color:     colors[median],
		Left:      buildKDTree(colors[:median]),
		Right:     buildKDTree(colors[median+1:]),
		SplitAxis: axis,
	}
}

// chooseSplitAxis selects the axis with the largest variance.
func chooseSplitAxis(colors []RGB) int {
	var meanR, meanG, meanB float64
	for _, c := range colors {
		meanR += float64(c.R)
		meanG += float64(c.G)
		meanB += float64(c.B)
	}
	meanR /= float64(len(colors))
	meanG /= float64(len(colors))
	meanB /= float64(len(colors))

	var varR, varG, varB float64
	for _, c := range colors {
		varR += math.Pow(float64(c.R)-meanR, 2)
		varG += math.Pow(float64(c.G)-meanG, 2)
		varB += math.Pow(float64(c.B)-meanB, 2)
	}

	if varR > varG && varR > varB {
		return 0 // R axis
	} else if varG > varB {
		return 1 // G axis
	}
	return 2 // B axis
}

// colorComponent returns the color component along the given axis.
func colorComponent(color RGB, axis int) uint8 {
	switch axis {
	case 0:
		return color.R
	case 1:
		return color.G
	default:
		return color.B
	}
}

// nearestNeighbor finds the tree color closest to target, descending
// along each node's recorded split axis and pruning the far branch
// when the splitting plane is further away than the best match.
func (node *colorNode) nearestNeighbor(target RGB, best RGB, bestDist float64) (RGB, float64) {
	if node == nil {
		return best, bestDist
	}

	dist := colorDistance(node.Color, target)
	if dist < bestDist {
		best = node.Color
		bestDist = dist
	}

	axis := node.SplitAxis
	var next, other *colorNode
	if colorComponent(target, axis) < colorComponent(node.Color, axis) {
		next, other = node.Left, node.Right
	} else {
		next, other = node.Right, node.Left
	}

	best, bestDist = next.nearestNeighbor(target, best, bestDist)

	axisDistance := float64(colorComponent(target, axis)) -
		float64(colorComponent(node.Color, axis))
	if axisDistance*axisDistance < bestDist {
		best, bestDist = other.nearestNeighbor(target, best, bestDist)
	}

	return best, bestDist
}
