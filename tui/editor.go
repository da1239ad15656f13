/*
Package tui implements the interactive terminal editor.

The canvas is rendered with two terminal columns per logical pixel so
cells come out roughly square. Transparent cells show a checkerboard
backdrop which is purely an on-screen aid; exports never include it.
All edits flow through the session's press/move/release state machine
in the order the terminal delivers them.
*/
package tui

import (
	"context"
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/bodgit/pixelart"
	"github.com/bodgit/pixelart/grid"
	"github.com/bodgit/pixelart/quant"
	"github.com/bodgit/pixelart/swatch"
)

const maxSwatches = 9

var checker = [2]tcell.Color{
	tcell.NewRGBColor(0x30, 0x30, 0x30),
	tcell.NewRGBColor(0x40, 0x40, 0x40),
}

// Editor drives one interactive editing session.
type Editor struct {
	session *pixelart.Session
	save    func(*grid.Grid) error

	// source is the original bitmap, kept so the resolution keys can
	// re-quantize without reloading the file. Nil when editing a grid
	// loaded from a record.
	source image.Image
	opt    quant.Options

	gen     pixelart.Generator
	results <-chan pixelart.Result

	method   swatch.Method
	swatches []grid.Cell

	screen  tcell.Screen
	buttons tcell.ButtonMask
	status  string
	done    bool
}

// New returns an editor over s. The save callback is invoked when the
// user asks to write the canvas out; a nil callback disables saving.
func New(s *pixelart.Session, save func(*grid.Grid) error) *Editor {
	return &Editor{
		session: s,
		save:    save,
	}
}

// SetSource provides the bitmap and quantizer options used when the
// resolution key regenerates the canvas.
func (e *Editor) SetSource(m image.Image, opt quant.Options) {
	e.source = m
	e.opt = opt
}

// Run takes over the terminal until the user quits. Edits land in the
// session's grid; the caller decides what to do with it afterwards.
func (e *Editor) Run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.EnableMouse()
	e.screen = screen
	e.refreshSwatches()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	for !e.done {
		e.draw()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			e.handle(ev)
		case res, ok := <-e.results:
			e.results = nil
			if ok {
				e.finishGeneration(res)
			}
		}
	}
	return nil
}

func (e *Editor) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		e.handleKey(ev)
	case *tcell.EventMouse:
		e.handleMouse(ev)
	}
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		e.done = true
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}

	switch r := ev.Rune(); r {
	case 'q':
		e.done = true
	case 'p':
		e.session.SetTool(pixelart.ToolPencil)
	case 'e':
		e.session.SetTool(pixelart.ToolEraser)
	case 'm':
		e.session.SetTool(pixelart.ToolMagicEraser)
	case 'n':
		e.session.SetTool(pixelart.ToolNone)
	case '[':
		e.session.SetBrushSize(e.session.Tools().BrushSize - 1)
	case ']':
		e.session.SetBrushSize(e.session.Tools().BrushSize + 1)
	case 'k':
		e.method ^= swatch.MethodKMeans
		e.refreshSwatches()
		e.status = fmt.Sprintf("swatches: %s", e.method)
	case 'R':
		e.regenerate()
	case 'w':
		e.writeOut()
	default:
		if r >= '1' && r <= '9' {
			if i := int(r - '1'); i < len(e.swatches) {
				e.session.SetColor(e.swatches[i])
			}
		}
	}
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	g := e.session.Grid()
	if g == nil {
		return
	}

	switch ev.Buttons() {
	case tcell.WheelUp:
		e.session.SetBrushSize(e.session.Tools().BrushSize + 1)
		return
	case tcell.WheelDown:
		e.session.SetBrushSize(e.session.Tools().BrushSize - 1)
		return
	}

	w, h := e.screen.Size()
	l := computeLayout(w, h, g.Resolution)

	mx, my := ev.Position()
	held := ev.Buttons()&tcell.Button1 != 0
	wasHeld := e.buttons&tcell.Button1 != 0
	e.buttons = ev.Buttons()

	// Coordinates off the canvas still participate in the stroke state
	// machine; the editor treats them as out-of-bounds no-ops.
	x, y, ok := l.gridCoord(mx, my)
	if !ok {
		x, y = -1, -1
	}

	switch {
	case held && !wasHeld:
		e.session.Press(x, y)
	case held && wasHeld:
		e.session.Move(x, y)
	case !held && wasHeld:
		e.session.Release()
	}
}

// regenerate re-quantizes the source bitmap at the next supported
// resolution. The request runs off the event loop; a result that has
// been superseded by a newer request never lands.
func (e *Editor) regenerate() {
	if e.source == nil {
		e.status = "no source bitmap to regenerate from"
		return
	}
	g := e.session.Grid()
	if g == nil {
		return
	}

	next := grid.Resolutions[0]
	for i, r := range grid.Resolutions {
		if r == g.Resolution {
			next = grid.Resolutions[(i+1)%len(grid.Resolutions)]
			break
		}
	}

	e.status = fmt.Sprintf("quantizing at %dx%d...", next, next)
	e.results = e.gen.Start(context.Background(), e.source, next, e.opt)
}

func (e *Editor) finishGeneration(res pixelart.Result) {
	if res.Err != nil {
		e.status = res.Err.Error()
		return
	}
	e.session.SetGrid(res.Grid)
	e.refreshSwatches()
	e.status = fmt.Sprintf("%dx%d", res.Grid.Resolution, res.Grid.Resolution)
}

func (e *Editor) writeOut() {
	if e.save == nil {
		e.status = "saving is not configured"
		return
	}
	g := e.session.Grid()
	if g == nil {
		return
	}
	if err := e.save(g); err != nil {
		e.status = err.Error()
		return
	}
	e.status = "saved"
}

func (e *Editor) refreshSwatches() {
	if g := e.session.Grid(); g != nil {
		e.swatches = swatch.FromGrid(g, maxSwatches, e.method)
	}
}

func (e *Editor) draw() {
	e.screen.Clear()

	g := e.session.Grid()
	if g == nil {
		e.drawStatus()
		e.screen.Show()
		return
	}

	w, h := e.screen.Size()
	l := computeLayout(w, h, g.Resolution)

	for y := 0; y < g.Resolution; y++ {
		for x := 0; x < g.Resolution; x++ {
			c := g.At(x, y)
			var bg tcell.Color
			if c.Opaque {
				bg = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
			} else {
				bg = checker[(x+y)%2]
			}
			style := tcell.StyleDefault.Background(bg)

			sx, sy, cw, ch := l.cellRect(x, y)
			for dy := 0; dy < ch && sy+dy < h-statusRows; dy++ {
				for dx := 0; dx < cw && sx+dx < w; dx++ {
					e.screen.SetContent(sx+dx, sy+dy, ' ', nil, style)
				}
			}
		}
	}

	e.drawStatus()
	e.screen.Show()
}

func (e *Editor) drawStatus() {
	w, h := e.screen.Size()
	if h < statusRows {
		return
	}

	// Swatch row: numbered colored blocks the digit keys select.
	x := 0
	for i, c := range e.swatches {
		if x+3 > w {
			break
		}
		style := tcell.StyleDefault.
			Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).
			Foreground(tcell.ColorBlack)
		e.screen.SetContent(x, h-2, rune('1'+i), nil, style)
		e.screen.SetContent(x+1, h-2, ' ', nil, style)
		x += 3
	}

	ts := e.session.Tools()
	line := fmt.Sprintf("%s  brush %d  %s", ts.Tool, ts.BrushSize, ts.Color.Hex())
	if e.status != "" {
		line += "  | " + e.status
	}
	for i, r := range line {
		if i >= w {
			break
		}
		e.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault)
	}
}
