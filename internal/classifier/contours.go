package classifier

import (
	"image"
	"math"
)

// Fixed gradient thresholds for edge detection. Kept as package constants so
// feature extraction stays reproducible across calls and instances.
const (
	edgeLowThreshold  = 50.0
	edgeHighThreshold = 150.0
)

// grayscale converts any image to an 8-bit intensity buffer with bounds
// normalized to the origin.
func grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// ITU-R BT.601 luma, matching the image/color Gray conversion
			lum := (19595*r + 38470*g + 7471*b + 1<<15) >> 24
			gray.Pix[y*gray.Stride+x] = uint8(lum)
		}
	}
	return gray
}

// sobelX computes the horizontal Sobel gradient at (x, y).
func sobelX(gray *image.Gray, x, y int) int {
	return -1*int(gray.GrayAt(x-1, y-1).Y) + 1*int(gray.GrayAt(x+1, y-1).Y) +
		-2*int(gray.GrayAt(x-1, y).Y) + 2*int(gray.GrayAt(x+1, y).Y) +
		-1*int(gray.GrayAt(x-1, y+1).Y) + 1*int(gray.GrayAt(x+1, y+1).Y)
}

// sobelY computes the vertical Sobel gradient at (x, y).
func sobelY(gray *image.Gray, x, y int) int {
	return -1*int(gray.GrayAt(x-1, y-1).Y) - 2*int(gray.GrayAt(x, y-1).Y) - 1*int(gray.GrayAt(x+1, y-1).Y) +
		1*int(gray.GrayAt(x-1, y+1).Y) + 2*int(gray.GrayAt(x, y+1).Y) + 1*int(gray.GrayAt(x+1, y+1).Y)
}

// gradientMagnitudes returns the Euclidean Sobel gradient magnitude per
// pixel in row-major order. Border pixels are zero.
func gradientMagnitudes(gray *image.Gray) []float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	mag := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := sobelX(gray, x, y)
			gy := sobelY(gray, x, y)
			mag[y*w+x] = math.Sqrt(float64(gx*gx + gy*gy))
		}
	}
	return mag
}

// edgeMask applies double thresholding with hysteresis: pixels at or above
// the high threshold seed edges, and pixels at or above the low threshold
// are kept only when 8-connected to a seed.
func edgeMask(mag []float64, w, h int) []bool {
	edges := make([]bool, w*h)
	queue := make([]int, 0, w*h/8)
	for i, m := range mag {
		if m >= edgeHighThreshold {
			edges[i] = true
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if !edges[j] && mag[j] >= edgeLowThreshold {
					edges[j] = true
					queue = append(queue, j)
				}
			}
		}
	}
	return edges
}

// contourRegion describes one filled external contour.
type contourRegion struct {
	area                   int
	minX, minY, maxX, maxY int
}

func (r contourRegion) width() int  { return r.maxX - r.minX + 1 }
func (r contourRegion) height() int { return r.maxY - r.minY + 1 }

// largestFilledRegion recovers external contours from an edge mask and
// returns the one with the greatest enclosed area. Background is flood-filled
// from the image border across non-edge pixels; whatever remains unreachable
// (edge pixels plus enclosed interiors) forms the filled object regions.
func largestFilledRegion(edges []bool, w, h int) (contourRegion, bool) {
	background := make([]bool, w*h)
	queue := make([]int, 0, 2*(w+h))
	enqueue := func(i int) {
		if !background[i] && !edges[i] {
			background[i] = true
			queue = append(queue, i)
		}
	}
	for x := 0; x < w; x++ {
		enqueue(x)
		enqueue((h-1)*w + x)
	}
	for y := 0; y < h; y++ {
		enqueue(y * w)
		enqueue(y*w + w - 1)
	}
	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := i%w, i/w
		if x > 0 {
			enqueue(i - 1)
		}
		if x < w-1 {
			enqueue(i + 1)
		}
		if y > 0 {
			enqueue(i - w)
		}
		if y < h-1 {
			enqueue(i + w)
		}
	}

	// Connected components over everything that is not background.
	visited := make([]bool, w*h)
	var best contourRegion
	found := false
	for start := 0; start < w*h; start++ {
		if background[start] || visited[start] {
			continue
		}
		region := contourRegion{minX: start % w, minY: start / w, maxX: start % w, maxY: start / w}
		visited[start] = true
		stack := []int{start}
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			region.area++
			if x < region.minX {
				region.minX = x
			}
			if x > region.maxX {
				region.maxX = x
			}
			if y < region.minY {
				region.minY = y
			}
			if y > region.maxY {
				region.maxY = y
			}
			push := func(j int) {
				if !background[j] && !visited[j] {
					visited[j] = true
					stack = append(stack, j)
				}
			}
			if x > 0 {
				push(i - 1)
			}
			if x < w-1 {
				push(i + 1)
			}
			if y > 0 {
				push(i - w)
			}
			if y < h-1 {
				push(i + w)
			}
		}
		if !found || region.area > best.area {
			best = region
			found = true
		}
	}
	return best, found
}

// otsuThreshold computes the global intensity threshold that maximizes
// between-class variance.
func otsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	total := w * h
	if total == 0 {
		return 0
	}
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for _, p := range row {
			hist[p]++
		}
	}

	var sum float64
	for t := 0; t < 256; t++ {
		sum += float64(t) * float64(hist[t])
	}

	var sumBack, weightBack float64
	bestThreshold := uint8(0)
	bestVariance := 0.0
	for t := 0; t < 256; t++ {
		weightBack += float64(hist[t])
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(t) * float64(hist[t])
		meanBack := sumBack / weightBack
		meanFore := (sum - sumBack) / weightFore
		variance := weightBack * weightFore * (meanBack - meanFore) * (meanBack - meanFore)
		if variance > bestVariance {
			bestVariance = variance
			bestThreshold = uint8(t)
		}
	}
	return bestThreshold
}

// countRegions counts 4-connected foreground components in the binary image
// formed by thresholding gray at thr (foreground = intensity > thr).
func countRegions(gray *image.Gray, thr uint8) int {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	foreground := func(i int) bool {
		x, y := i%w, i/w
		return gray.Pix[y*gray.Stride+x] > thr
	}
	visited := make([]bool, w*h)
	count := 0
	for start := 0; start < w*h; start++ {
		if visited[start] || !foreground(start) {
			continue
		}
		count++
		visited[start] = true
		stack := []int{start}
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			push := func(j int) {
				if !visited[j] && foreground(j) {
					visited[j] = true
					stack = append(stack, j)
				}
			}
			if x > 0 {
				push(i - 1)
			}
			if x < w-1 {
				push(i + 1)
			}
			if y > 0 {
				push(i - w)
			}
			if y < h-1 {
				push(i + w)
			}
		}
	}
	return count
}
