package engine

// checkGameEnd evaluates the end conditions after a successful action.
// Earlier rules take priority:
//
//  1. third fuse: game over, score forced to 0
//  2. every color completed: game over
//  3. deck just emptied: start a countdown of one turn per player
//  4. countdown running: tick, game over at 0
func (g *GameState) checkGameEnd() {
	switch {
	case g.FuseTokens >= MaxFuseTokens:
		g.Flags |= FlagGameOver | FlagExploded
	case g.allColorsComplete():
		g.Flags |= FlagGameOver
	case g.DeckLen() == 0 && g.TurnsLeft < 0:
		g.TurnsLeft = int8(g.Rules.NumPlayers)
	case g.TurnsLeft > 0:
		g.TurnsLeft--
		if g.TurnsLeft == 0 {
			g.Flags |= FlagGameOver
		}
	}
}

func (g *GameState) allColorsComplete() bool {
	for _, r := range g.Board {
		if r != MaxRank {
			return false
		}
	}
	return true
}
