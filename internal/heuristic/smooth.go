package heuristic

// smoothAlpha applies a 3x3 box mean to alpha. Cells outside the image are
// left out of both the sum and the divisor.
//
// Horizontal 3-wide sums are kept for at most three rows at a time, in slots
// addressed by row % 3, so scratch space is O(width) whatever the height.
func smoothAlpha(alpha []byte, width, height int) []byte {
	out := make([]byte, len(alpha))

	var sums, counts [3][]int
	for i := range sums {
		sums[i] = make([]int, width)
		counts[i] = make([]int, width)
	}

	prepareRow := func(y int) {
		sum, count := sums[y%3], counts[y%3]
		row := alpha[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			s, n := int(row[x]), 1
			if x > 0 {
				s += int(row[x-1])
				n++
			}
			if x < width-1 {
				s += int(row[x+1])
				n++
			}
			sum[x], count[x] = s, n
		}
	}

	prepareRow(0)
	for y := 0; y < height; y++ {
		// Slot (y+1)%3 held row y-2, which no output row needs any more.
		if y+1 < height {
			prepareRow(y + 1)
		}

		dst := out[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			s, n := 0, 0
			for ny := y - 1; ny <= y+1; ny++ {
				if ny < 0 || ny >= height {
					continue
				}
				s += sums[ny%3][x]
				n += counts[ny%3][x]
			}
			dst[x] = byte(s / n)
		}
	}

	return out
}
