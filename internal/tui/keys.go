package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause        key.Binding
	Next         key.Binding
	Prev         key.Binding
	AddTime      key.Binding
	SubTime      key.Binding
	SeekBack     key.Binding
	SeekForward  key.Binding
	AddPlayer    key.Binding
	RemovePlayer key.Binding
	CycleChips   key.Binding
	AddChips     key.Binding
	HeadsUp      key.Binding
	Finish       key.Binding
	Start        key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Next:         key.NewBinding(key.WithKeys("n", ">"), key.WithHelp("n", "next level")),
		Prev:         key.NewBinding(key.WithKeys("p", "<"), key.WithHelp("p", "prev level")),
		AddTime:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "+10s")),
		SubTime:      key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "-10s")),
		SeekBack:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "scrub back")),
		SeekForward:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "scrub forward")),
		AddPlayer:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add player")),
		RemovePlayer: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove player")),
		CycleChips:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chip amount")),
		AddChips:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add chips")),
		HeadsUp:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "heads-up")),
		Finish:       key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "finish")),
		Start:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Next, k.Prev, k.AddPlayer, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Next, k.Prev, k.AddTime, k.SubTime},
		{k.SeekBack, k.SeekForward, k.HeadsUp},
		{k.AddPlayer, k.RemovePlayer, k.CycleChips, k.AddChips},
		{k.Finish, k.Start, k.Help, k.Quit},
	}
}
