// Package render draws game state, events and reports on a terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jthies73/hanabi/engine"
	"github.com/jthies73/hanabi/internal/command"
	"github.com/jthies73/hanabi/internal/match"
	"github.com/jthies73/hanabi/internal/sim"
)

// C holds the message colors.
var C = struct {
	Good, Bad, Info, Warn, Header, Prompt *color.Color
}{
	Good:   color.New(color.FgGreen),
	Bad:    color.New(color.FgRed),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
}

var cardColors = [engine.NumColors]*color.Color{
	engine.ColorRed:    color.New(color.FgRed),
	engine.ColorYellow: color.New(color.FgYellow),
	engine.ColorGreen:  color.New(color.FgGreen),
	engine.ColorBlue:   color.New(color.FgBlue),
	engine.ColorWhite:  color.New(color.FgWhite, color.Bold),
}

// SetNoColor disables or enables all coloring.
func SetNoColor(off bool) { color.NoColor = off }

// Card returns a colored short form such as "R3".
func Card(c engine.Card) string {
	if c.IsEmpty() || !c.Color.Valid() {
		return "--"
	}
	return cardColors[c.Color].Sprint(c.Short())
}

// Firework returns a colored board entry such as "G[2]".
func Firework(c engine.Color, r engine.Rank) string {
	return cardColors[c].Sprintf("%s[%s]", c.String()[:1], r)
}

// Renderer writes to one output with fixed seat names.
type Renderer struct {
	w     io.Writer
	names []string
}

// New returns a Renderer for a match with the given seat names.
func New(w io.Writer, names []string) *Renderer {
	return &Renderer{w: w, names: names}
}

func (r *Renderer) name(p uint8) string {
	if int(p) < len(r.names) {
		return r.names[p]
	}
	return "P" + strconv.Itoa(int(p))
}

// State draws the board, tokens, discards and every hand. The viewer's own
// hand is shown as "??" per slot.
func (r *Renderer) State(v match.View) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetTitle("HANABI  turn %d", v.Turn)

	board := make([]string, engine.NumColors)
	for _, c := range engine.Colors {
		board[c] = Firework(c, v.Board[c])
	}
	t.AppendRow(table.Row{"Board", strings.Join(board, " ")})
	t.AppendRow(table.Row{"Tokens", fmt.Sprintf("Clues: %d/%d    Fuses: %d/%d    Deck: %d",
		v.ClueTokens, engine.MaxClueTokens, v.FuseTokens, engine.MaxFuseTokens, v.DeckSize)})
	if v.TurnsLeft >= 0 {
		t.AppendRow(table.Row{"Final round", fmt.Sprintf("%d turns left", v.TurnsLeft)})
	}
	t.AppendRow(table.Row{"Discards", discards(v.Discards)})
	t.AppendSeparator()

	for _, p := range v.Players {
		label := p.Name
		if p.IsCurrentTurn {
			label = "> " + label
		}
		var cards []string
		if p.Seat == v.Viewer {
			for range p.HandSize {
				cards = append(cards, "??")
			}
			t.AppendRow(table.Row{label, strings.Join(cards, " ") + fmt.Sprintf("  (indices 0-%d)", p.HandSize-1)})
			continue
		}
		for _, c := range p.Hand {
			cards = append(cards, Card(c.Card()))
		}
		t.AppendRow(table.Row{label, strings.Join(cards, " ")})
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.Render()
}

// discards lists the last ten discarded cards.
func discards(cards []*match.EventCard) string {
	if len(cards) == 0 {
		return "-"
	}
	start := max(len(cards)-10, 0)
	out := make([]string, 0, len(cards)-start)
	for _, c := range cards[start:] {
		out = append(out, Card(c.Card()))
	}
	return strings.Join(out, " ")
}

// Event prints a one-line description of ev. Turn and game-end events are
// drawn by State and GameOver instead.
func (r *Renderer) Event(ev match.Event) {
	actor := r.name(ev.Player)
	switch ev.Type {
	case match.EventPlay:
		c := ev.Card.Card()
		fmt.Fprintf(r.w, "%s plays card at index %d\n", actor, *ev.Card.Idx)
		C.Good.Fprintf(r.w, "✓ Successfully played %s!\n", c)
	case match.EventMisplay:
		c := ev.Card.Card()
		fmt.Fprintf(r.w, "%s plays card at index %d\n", actor, *ev.Card.Idx)
		C.Bad.Fprintf(r.w, "✗ Failed to play %s - added to discard pile and lost a fuse!\n", c)
	case match.EventDiscard:
		c := ev.Card.Card()
		fmt.Fprintf(r.w, "%s discards card at index %d\n", actor, *ev.Card.Idx)
		fmt.Fprintf(r.w, "Discarded %s - gained a clue token\n", Card(c))
	case match.EventHint:
		fmt.Fprintf(r.w, "%s gives %s a %s hint\n", actor, r.name(*ev.Target), strings.ToLower(ev.Hint))
		idx := make([]string, len(ev.Indices))
		for i, n := range ev.Indices {
			idx[i] = strconv.Itoa(n)
		}
		C.Info.Fprintf(r.w, "Hint given: %s - matching cards at indices: %s\n", strings.ToLower(ev.Hint), strings.Join(idx, ", "))
	case match.EventInvalidAction:
		r.Error(ev.Message)
	case match.EventBeliefs:
		r.Beliefs(actor, ev.Message)
	}
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	C.Bad.Fprintf(r.w, "✗ Error: %s\n", msg)
}

// Beliefs draws a belief dump as a table, one row per slot.
func (r *Renderer) Beliefs(name, dump string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetTitle("%s's Knowledge", name)
	for _, line := range strings.Split(strings.TrimSpace(dump), "\n") {
		if line != "" {
			t.AppendRow(table.Row{line})
		}
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// Help lists the commands.
func (r *Renderer) Help() {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.AppendHeader(table.Row{"Command", "Alias", "Description"})
	for _, s := range command.Help {
		t.AppendRow(table.Row{strings.TrimSpace(s.Name + " " + s.Args), s.Alias, s.Desc})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// GameOver prints the final result.
func (r *Renderer) GameOver(res match.Result) {
	C.Header.Fprintln(r.w, "GAME OVER")
	switch {
	case res.Quit:
		fmt.Fprintf(r.w, "Game abandoned after %d turns. Score: %d\n", res.Turns, res.Score)
	case res.Exploded:
		C.Bad.Fprintln(r.w, "EXPLOSION! The game ended with 3 fuses.")
		fmt.Fprintln(r.w, "Final Score: 0")
	case res.Perfect:
		C.Good.Fprintln(r.w, "PERFECT SCORE! All fireworks completed!")
		fmt.Fprintf(r.w, "Final Score: %d\n", res.Score)
	default:
		fmt.Fprintf(r.w, "Final Score: %d\n", res.Score)
	}
}

// Summary draws a simulation report with a score histogram.
func Summary(w io.Writer, s sim.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Simulation: %d games, %d players", s.Games, s.Players)
	t.AppendRows([]table.Row{
		{"Mean score", fmt.Sprintf("%.2f", s.Mean)},
		{"Min / Max", fmt.Sprintf("%d / %d", s.Min, s.Max)},
		{"Perfect games", s.Perfect},
		{"Explosions", s.Explosions},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()

	h := table.NewWriter()
	h.SetOutputMirror(w)
	h.AppendHeader(table.Row{"Score", "Games", ""})
	for score, n := range s.Histogram {
		if n == 0 {
			continue
		}
		h.AppendRow(table.Row{score, n, strings.Repeat("█", barWidth(n, s.Games))})
	}
	h.SetStyle(table.StyleLight)
	h.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
	})
	h.Render()
}

// barWidth scales n of total to at most 40 cells, never rounding a
// non-zero count to nothing.
func barWidth(n, total int) int {
	if total == 0 {
		return 0
	}
	return max(n*40/total, 1)
}
