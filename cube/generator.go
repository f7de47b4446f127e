package cube

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/puzzles/randpool"
)

const hexDigits = "0123456789ABCDEF"

// newDesc paints as many squares blue as the solid has faces, spread
// evenly over the equivalence classes so that every face can in fact
// be collected, then picks a non-blue starting square. The descriptor
// is the blue bitmap in hex followed by ":start".
func newDesc(p Params, rnd *randpool.Pool) (string, string) {
	sol := solids[p.Solid]
	squares := enumGridSquares(p)
	nclasses := classCount(p.Solid)
	classes := make([][]int, nclasses)
	for i := range squares {
		c := squareClass(&squares[i], nclasses)
		classes[c] = append(classes[c], i)
	}
	facesPerClass := sol.numFaces() / nclasses

	blue := make([]bool, len(squares))
	for _, class := range classes {
		for j := 0; j < facesPerClass; j++ {
			n := rnd.Upto(len(class))
			blue[class[n]] = true
			class = append(class[:n], class[n+1:]...)
		}
	}

	var sb strings.Builder
	var nonblue []int
	acc, bit := 0, 8
	for i, b := range blue {
		if b {
			acc |= bit
		} else {
			nonblue = append(nonblue, i)
		}
		bit >>= 1
		if bit == 0 {
			sb.WriteByte(hexDigits[acc])
			acc, bit = 0, 8
		}
	}
	if bit != 8 {
		sb.WriteByte(hexDigits[acc])
	}
	fmt.Fprintf(&sb, ":%d", nonblue[rnd.Upto(len(nonblue))])

	// No aux string: the family has no solver.
	return sb.String(), ""
}
