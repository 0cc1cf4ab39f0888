package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/delivery/dto"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	accentColor  = lipgloss.Color("#22C55E")
	warningColor = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	readyStyle  = lipgloss.NewStyle().Foreground(accentColor)
	waitStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	warnStyle   = lipgloss.NewStyle().Foreground(warningColor)
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
)

// UI renders incoming server state to the terminal. It keeps no mutable
// state of its own beyond terminal dimensions, which are refreshed on
// every render.
type UI struct {
	termWidth int
}

// NewUI creates a renderer sized to the current terminal.
func NewUI() *UI {
	u := &UI{termWidth: 80}
	u.updateTerminalSize()
	return u
}

// updateTerminalSize tries stdout, then stderr, then falls back to the
// COLUMNS environment variable, mirroring what most terminal multiplexers
// set when a real tty isn't attached.
func (u *UI) updateTerminalSize() {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		u.termWidth = w
		return
	}
	if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w > 0 {
		u.termWidth = w
		return
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		fmt.Sscanf(cols, "%d", &u.termWidth)
	}
	if u.termWidth <= 0 {
		u.termWidth = 80
	}
}

// RenderRoster prints the lobby's current member list.
func (u *UI) RenderRoster(payload dto.RosterUpdatePayload) {
	fmt.Println(headerStyle.Render("--- lobby roster ---"))
	for _, p := range payload.Players {
		status := waitStyle.Render("waiting")
		if p.IsReady {
			status = readyStyle.Render("ready")
		}
		fmt.Printf("  %-20s %s\n", p.Name, status)
	}
	fmt.Println()
}

// RenderRejection prints a server-side rejection of the last command.
func (u *UI) RenderRejection(reason string) {
	fmt.Println(errStyle.Render("refused: " + reason))
}

// RenderGameUpdate prints the table state from the caller's point of view:
// its own hand in full, every player's bank value and property sets, and
// whose turn it is.
func (u *UI) RenderGameUpdate(selfID string, payload dto.GameUpdatePayload) {
	u.updateTerminalSize()

	fmt.Println(headerStyle.Render("--- table state ---"))
	if payload.Winner != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%s has won the game!", *payload.Winner)))
	}
	if payload.DeckCount != nil {
		fmt.Printf("deck: %d cards left\n", *payload.DeckCount)
	}
	if payload.ActionsRemaining != nil {
		fmt.Printf("actions remaining this turn: %d\n", *payload.ActionsRemaining)
	}

	ids := make([]string, 0, len(payload.Players))
	for id := range payload.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := payload.Players[id]
		u.renderPlayerPanel(id, selfID, p)
	}
	fmt.Println()
}

func (u *UI) renderPlayerPanel(id, selfID string, p dto.PlayerView) {
	title := p.Name
	if id == selfID {
		title += " (you)"
	}
	bankTotal := 0
	for _, c := range p.Bank {
		if c.Value != nil {
			bankTotal += *c.Value
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "bank: %d  hand: %d cards\n", bankTotal, p.HandCount)

	colors := make([]string, 0, len(p.Properties))
	for color := range p.Properties {
		colors = append(colors, string(color))
	}
	sort.Strings(colors)
	for _, color := range colors {
		cards := p.Properties[card.Color(color)]
		names := make([]string, len(cards))
		for i, c := range cards {
			names[i] = c.Name
		}
		fmt.Fprintf(&b, "  %-10s %s\n", color, strings.Join(names, ", "))
	}

	if id == selfID && len(p.Hand) > 0 {
		b.WriteString("hand:\n")
		for _, c := range p.Hand {
			fmt.Fprintf(&b, "  [%d] %s\n", c.ID, c.Name)
		}
	}

	fmt.Println(panelStyle.Render(headerStyle.Render(title) + "\n" + b.String()))
}
