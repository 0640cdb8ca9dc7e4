package engine

// Score returns the sum of the board ranks, or 0 once the third fuse has
// burned. The maximum is MaxScore.
func (g *GameState) Score() int {
	if g.FuseTokens >= MaxFuseTokens {
		return 0
	}
	return g.BoardTotal()
}

// BoardTotal is the number of cards successfully played, regardless of fuses.
func (g *GameState) BoardTotal() int {
	total := 0
	for _, r := range g.Board {
		total += int(r)
	}
	return total
}

// IsPerfect reports whether every color has been completed.
func (g *GameState) IsPerfect() bool { return g.Score() == MaxScore }
