package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

const (
	ppmMaxValue  = 255
	ppmLineWidth = 70 // Plain PPM readers may reject longer lines
)

// WritePPM writes the canvas as a plain (P3) PPM image. Channels are
// clamped and rounded to 0..255, each row starts on a new line and no line
// exceeds 70 characters.
func WritePPM(w io.Writer, canvas *renderer.Canvas) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n%d\n", canvas.Width(), canvas.Height(), ppmMaxValue)

	for y := 0; y < canvas.Height(); y++ {
		lineLen := 0
		for x := 0; x < canvas.Width(); x++ {
			r, g, b := canvas.At(x, y).RGB8()
			for _, v := range [3]uint8{r, g, b} {
				s := strconv.Itoa(int(v))
				if lineLen > 0 && lineLen+1+len(s) > ppmLineWidth {
					bw.WriteByte('\n')
					lineLen = 0
				}
				if lineLen > 0 {
					bw.WriteByte(' ')
					lineLen++
				}
				bw.WriteString(s)
				lineLen += len(s)
			}
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write PPM: %w", err)
	}
	return nil
}
