package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrSingularMatrix is returned when inverting a matrix whose determinant is zero
var ErrSingularMatrix = errors.New("singular matrix")

// Matrix is a square matrix of size 2, 3 or 4. Storage is always 4x4;
// only the top-left size x size block is meaningful.
type Matrix struct {
	m    [4][4]float64
	size int
}

// NewMatrix builds a matrix from rows. The number of rows sets the size
// and must be 2, 3 or 4; extra columns in a row are ignored.
func NewMatrix(rows ...[]float64) Matrix {
	size := len(rows)
	if size < 2 || size > 4 {
		panic(fmt.Sprintf("core: matrix size %d out of range", size))
	}
	result := Matrix{size: size}
	for r, row := range rows {
		for c := 0; c < size && c < len(row); c++ {
			result.m[r][c] = row[c]
		}
	}
	return result
}

// Identity returns the 4x4 identity matrix
func Identity() Matrix {
	return Matrix{
		m: [4][4]float64{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		},
		size: 4,
	}
}

// Size returns the logical dimension of the matrix
func (a Matrix) Size() int {
	return a.size
}

// At returns the element at row r, column c
func (a Matrix) At(r, c int) float64 {
	return a.m[r][c]
}

// Multiply returns a * b. The result takes the larger of the two sizes;
// cells outside a smaller operand's block are zero.
func (a Matrix) Multiply(b Matrix) Matrix {
	result := Matrix{size: max(a.size, b.size)}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result.m[r][c] = a.m[r][0]*b.m[0][c] +
				a.m[r][1]*b.m[1][c] +
				a.m[r][2]*b.m[2][c] +
				a.m[r][3]*b.m[3][c]
		}
	}
	return result
}

// MultiplyTuple returns a * t
func (a Matrix) MultiplyTuple(t Tuple4) Tuple4 {
	return Tuple4{
		X: a.m[0][0]*t.X + a.m[0][1]*t.Y + a.m[0][2]*t.Z + a.m[0][3]*t.W,
		Y: a.m[1][0]*t.X + a.m[1][1]*t.Y + a.m[1][2]*t.Z + a.m[1][3]*t.W,
		Z: a.m[2][0]*t.X + a.m[2][1]*t.Y + a.m[2][2]*t.Z + a.m[2][3]*t.W,
		W: a.m[3][0]*t.X + a.m[3][1]*t.Y + a.m[3][2]*t.Z + a.m[3][3]*t.W,
	}
}

// Transpose returns the transposed matrix
func (a Matrix) Transpose() Matrix {
	result := Matrix{size: a.size}
	for r := 0; r < a.size; r++ {
		for c := 0; c < a.size; c++ {
			result.m[r][c] = a.m[c][r]
		}
	}
	return result
}

// Submatrix removes the given row and column, producing a matrix one size smaller
func (a Matrix) Submatrix(row, col int) Matrix {
	result := Matrix{size: a.size - 1}
	dr := 0
	for r := 0; r < a.size; r++ {
		if r == row {
			continue
		}
		dc := 0
		for c := 0; c < a.size; c++ {
			if c == col {
				continue
			}
			result.m[dr][dc] = a.m[r][c]
			dc++
		}
		dr++
	}
	return result
}

// Minor is the determinant of the submatrix at (row, col)
func (a Matrix) Minor(row, col int) float64 {
	return a.Submatrix(row, col).Determinant()
}

// Cofactor is the minor at (row, col) with the sign flipped on odd positions
func (a Matrix) Cofactor(row, col int) float64 {
	minor := a.Minor(row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant computes the determinant by cofactor expansion along the first row
func (a Matrix) Determinant() float64 {
	if a.size == 2 {
		return a.m[0][0]*a.m[1][1] - a.m[0][1]*a.m[1][0]
	}
	det := 0.0
	for c := 0; c < a.size; c++ {
		det += a.m[0][c] * a.Cofactor(0, c)
	}
	return det
}

// IsInvertible reports whether the determinant is non-zero relative to
// the magnitude of the entries
func (a Matrix) IsInvertible() bool {
	return !a.singular(a.Determinant())
}

// singular treats det as zero when it is within singularTolerance of the
// largest entry raised to the matrix size
func (a Matrix) singular(det float64) bool {
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return true
	}
	largest := 0.0
	for r := 0; r < a.size; r++ {
		for c := 0; c < a.size; c++ {
			largest = math.Max(largest, math.Abs(a.m[r][c]))
		}
	}
	return math.Abs(det) <= singularTolerance*math.Pow(largest, float64(a.size))
}

const singularTolerance = 1e-12

// Inverse returns the inverse matrix, or ErrSingularMatrix if the
// determinant is zero relative to the entries.
func (a Matrix) Inverse() (Matrix, error) {
	det := a.Determinant()
	if a.singular(det) {
		return Matrix{}, ErrSingularMatrix
	}

	result := Matrix{size: a.size}
	for r := 0; r < a.size; r++ {
		for c := 0; c < a.size; c++ {
			// transposed on write
			result.m[c][r] = a.Cofactor(r, c) / det
		}
	}
	return result, nil
}

// ApproxEqual compares two matrices elementwise within Epsilon
func (a Matrix) ApproxEqual(b Matrix) bool {
	if a.size != b.size {
		return false
	}
	for r := 0; r < a.size; r++ {
		for c := 0; c < a.size; c++ {
			if !FloatEqual(a.m[r][c], b.m[r][c]) {
				return false
			}
		}
	}
	return true
}

// String formats the matrix one row per line
func (a Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < a.size; r++ {
		sb.WriteString("|")
		for c := 0; c < a.size; c++ {
			fmt.Fprintf(&sb, " %9.5f |", a.m[r][c])
		}
		if r < a.size-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
