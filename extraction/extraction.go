// Package extraction detects edges in ingested artwork and thins the
// resulting stroke mask to a one-pixel skeleton.
package extraction

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/INLOpen/cloudreaders/ingestion"
)

// Result is the output of feature extraction. Skeleton and Edges are
// row-major rasters with the dimensions of the source image.
type Result struct {
	Width    int
	Height   int
	Skeleton []bool    // thinned stroke mask
	Edges    []float64 // sobel gradient magnitude, normalized to [0,1] input
	Metadata map[string]string
}

// Point is one skeleton pixel in image coordinates.
type Point struct {
	X int
	Y int
}

// ExtractFeatures computes a sobel edge map, thresholds it at
// mean + stddev, and thins the mask with Zhang-Suen to a skeleton.
func ExtractFeatures(ing *ingestion.Result, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("extraction starting")

	bounds := ing.Gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty source raster %dx%d", w, h)
	}

	gray := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray[y*w+x] = float64(ing.Gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) / 255.0
		}
	}

	edges := sobelMagnitude(gray, w, h)

	var sum, sumSq float64
	for _, v := range edges {
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(len(edges))
	std := math.Sqrt(sumSq/float64(len(edges)) - mean*mean)
	threshold := mean + std
	logger.Debug("edge threshold chosen", "threshold", threshold)

	mask := make([]bool, len(edges))
	var edgePixels int
	for i, v := range edges {
		if v > threshold {
			mask[i] = true
			edgePixels++
		}
	}

	skeleton := thinZhangSuen(mask, w, h)
	var skeletonPixels int
	for _, on := range skeleton {
		if on {
			skeletonPixels++
		}
	}

	metadata := make(map[string]string, len(ing.Metadata)+2)
	for k, v := range ing.Metadata {
		metadata[k] = v
	}
	metadata["edge_threshold"] = fmt.Sprintf("%.4f", threshold)
	metadata["edge_density"] = fmt.Sprintf("%.4f", float64(edgePixels)/float64(len(mask)))

	logger.Debug("skeletonized", "skeleton_pixels", skeletonPixels)
	logger.Info("extraction complete")
	return &Result{
		Width:    w,
		Height:   h,
		Skeleton: skeleton,
		Edges:    edges,
		Metadata: metadata,
	}, nil
}

// SummarizePoints converts a skeleton result into an ordered list of
// pixel coordinates, scanning row-major.
func SummarizePoints(res *Result) []Point {
	points := make([]Point, 0, 256)
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			if res.Skeleton[y*res.Width+x] {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// sobelMagnitude computes the gradient magnitude with 3x3 sobel
// kernels, clamping at the border.
func sobelMagnitude(gray []float64, w, h int) []float64 {
	at := func(x, y int) float64 {
		if x < 0 {
			x = 0
		} else if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		} else if y >= h {
			y = h - 1
		}
		return gray[y*w+x]
	}
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := -at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1) +
				at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			out[y*w+x] = math.Hypot(gx, gy) / 8.0
		}
	}
	return out
}

// thinZhangSuen reduces a binary mask to a one-pixel-wide skeleton
// using the two-subiteration Zhang-Suen algorithm.
func thinZhangSuen(mask []bool, w, h int) []bool {
	skeleton := make([]bool, len(mask))
	copy(skeleton, mask)

	at := func(x, y int) int {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		if skeleton[y*w+x] {
			return 1
		}
		return 0
	}

	for {
		changed := false
		for step := 0; step < 2; step++ {
			var toClear []int
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if at(x, y) == 0 {
						continue
					}
					// Clockwise neighbors p2..p9 starting north.
					p := [8]int{
						at(x, y-1), at(x+1, y-1), at(x+1, y), at(x+1, y+1),
						at(x, y+1), at(x-1, y+1), at(x-1, y), at(x-1, y-1),
					}
					b := p[0] + p[1] + p[2] + p[3] + p[4] + p[5] + p[6] + p[7]
					if b < 2 || b > 6 {
						continue
					}
					var a int
					for i := 0; i < 8; i++ {
						if p[i] == 0 && p[(i+1)%8] == 1 {
							a++
						}
					}
					if a != 1 {
						continue
					}
					if step == 0 {
						if p[0]*p[2]*p[4] != 0 || p[2]*p[4]*p[6] != 0 {
							continue
						}
					} else {
						if p[0]*p[2]*p[6] != 0 || p[0]*p[4]*p[6] != 0 {
							continue
						}
					}
					toClear = append(toClear, y*w+x)
				}
			}
			for _, i := range toClear {
				skeleton[i] = false
			}
			if len(toClear) > 0 {
				changed = true
			}
		}
		if !changed {
			return skeleton
		}
	}
}
