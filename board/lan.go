package board

import "strings"

// ParseMoveLAN finds the legal move on p matching lan ("e2e4", "e7e8q"),
// grounded on the teacher's Position.MakeMoveLAN lookup.
func ParseMoveLAN(p *Position, lan string) (Move, bool) {
	for _, m := range generateLegalMoves(p) {
		if strings.EqualFold(m.String(), lan) {
			return m, true
		}
	}
	return NoMove, false
}
