package board

import "strings"

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const SquareNone = -1

const (
	SquareA1 = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8
)

func flipSquare(sq int) int { return sq ^ 56 }

func file(sq int) int { return sq & 7 }
func rank(sq int) int { return sq >> 3 }

func absDelta(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

func squareDistance(sq1, sq2 int) int {
	fd, rd := absDelta(file(sq1), file(sq2)), absDelta(rank(sq1), rank(sq2))
	if fd > rd {
		return fd
	}
	return rd
}

func makeSquare(f, r int) int { return (r << 3) | f }

const (
	fileNames = "abcdefgh"
	rankNames = "12345678"
)

// SquareName returns the algebraic name of a square, e.g. "e4".
func SquareName(sq int) string {
	return string(fileNames[file(sq)]) + string(rankNames[rank(sq)])
}

// ParseSquare parses an algebraic square name, or "-" for SquareNone.
func ParseSquare(s string) int {
	if s == "-" {
		return SquareNone
	}
	f := strings.Index(fileNames, s[0:1])
	r := strings.Index(rankNames, s[1:2])
	return makeSquare(f, r)
}
