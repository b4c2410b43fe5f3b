package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Prev      key.Binding
	Next      key.Binding
	Execute   key.Binding
	Detect    key.Binding
	Auto      key.Binding
	Recovery  key.Binding
	Download  key.Binding
	Fastboot  key.Binding
	Unlock    key.Binding
	Lock      key.Binding
	FRP       key.Binding
	Shell     key.Binding
	Firmware  key.Binding
	Clear     key.Binding
	Copy      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Help      key.Binding
	Quit      key.Binding
	Confirm   key.Binding
	Deny      key.Binding
	ClosePick key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select device")),
		Prev:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev command")),
		Next:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next command")),
		Execute:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "execute")),
		Detect:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "detect")),
		Auto:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-detect")),
		Recovery:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recovery")),
		Download:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "download")),
		Fastboot:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bootloader")),
		Unlock:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unlock")),
		Lock:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lock")),
		FRP:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "FRP")),
		Shell:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "adb shell")),
		Firmware:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "firmware")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear log")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy log")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Top:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "oldest")),
		Bottom:    key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "newest")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Deny:      key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		ClosePick: key.NewBinding(key.WithKeys("q", "ctrl+g"), key.WithHelp("q", "close picker")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Detect, k.Auto, k.Execute, k.Recovery, k.Download, k.Fastboot, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Detect, k.Auto},
		{k.Prev, k.Next, k.Execute, k.Shell, k.Firmware},
		{k.Recovery, k.Download, k.Fastboot, k.Unlock, k.Lock, k.FRP},
		{k.PageUp, k.PageDown, k.Top, k.Bottom, k.Clear, k.Copy},
		{k.Help, k.Quit},
	}
}
