package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// browser is the -tui view: entities on the left, the selected entity's
// components on the right.
type browser struct {
	screen   tcell.Screen
	entities []entityDump
	details  [][]string
	cursor   int
	top      int
}

func newBrowser(screen tcell.Screen, entities []entityDump) (*browser, error) {
	b := &browser{screen: screen, entities: entities, details: make([][]string, len(entities))}
	for i, e := range entities {
		out, err := yaml.Marshal(e.Components)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", e.Entity, err)
		}
		b.details[i] = strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	}
	return b, nil
}

// browse runs the view until the user quits or the terminal goes away.
func browse(screen tcell.Screen, entities []entityDump) error {
	b, err := newBrowser(screen, entities)
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	for {
		b.draw()
		ev := screen.PollEvent()
		if ev == nil || !b.handle(ev) {
			return nil
		}
	}
}

// handle applies one event and reports whether to keep running.
func (b *browser) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		b.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyUp:
			b.move(-1)
		case tcell.KeyDown:
			b.move(1)
		case tcell.KeyHome:
			b.move(-len(b.entities))
		case tcell.KeyEnd:
			b.move(len(b.entities))
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		}
		switch ev.Rune() {
		case 'k':
			b.move(-1)
		case 'j':
			b.move(1)
		case 'q':
			return false
		}
	}
	return true
}

func (b *browser) move(d int) {
	if len(b.entities) == 0 {
		return
	}
	b.cursor = max(0, min(len(b.entities)-1, b.cursor+d))
}

func (b *browser) listWidth(sw int) int {
	w := runewidth.StringWidth(" entities ")
	for _, e := range b.entities {
		w = max(w, runewidth.StringWidth(b.label(e))+2)
	}
	return min(w, sw/3)
}

func (b *browser) label(e entityDump) string {
	return fmt.Sprintf("%s (%d)", e.Entity, len(e.Components))
}

func (b *browser) draw() {
	s := b.screen
	s.Clear()
	sw, sh := s.Size()
	if sw == 0 || sh < 3 {
		s.Show()
		return
	}

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	highlight := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)

	mid := b.listWidth(sw)
	putText(s, 0, 0, sw, fmt.Sprintf("%d entities", len(b.entities)), title)
	putText(s, mid+1, 0, sw-mid-1, "[j/k] move  [q] quit", dim)
	for y := 1; y < sh; y++ {
		s.SetContent(mid, y, '│', nil, dim)
	}

	rows := sh - 1
	if b.cursor < b.top {
		b.top = b.cursor
	}
	if b.cursor >= b.top+rows {
		b.top = b.cursor - rows + 1
	}
	for i := b.top; i < len(b.entities) && i-b.top < rows; i++ {
		style := tcell.StyleDefault
		if i == b.cursor {
			style = highlight
		}
		putText(s, 0, 1+i-b.top, mid, b.label(b.entities[i]), style)
	}

	if len(b.entities) > 0 {
		for i, line := range b.details[b.cursor] {
			if i >= rows {
				break
			}
			putText(s, mid+2, 1+i, sw-mid-2, line, tcell.StyleDefault)
		}
	}
	s.Show()
}

// putText writes s at (x, y), truncated to width columns.
func putText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	if width <= 0 {
		return
	}
	for _, r := range runewidth.Truncate(text, width, "…") {
		s.SetContent(x, y, r, nil, style)
		x += max(1, runewidth.RuneWidth(r))
	}
}
