// Package ui runs the interactive editor window: a toolbar on the left, the
// canvas on the right, pointer events forwarded to the editor and keyboard
// shortcuts for the command operations.
package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/plotsketch/internal/clipboard"
	"github.com/example/plotsketch/internal/editor"
	"github.com/example/plotsketch/internal/notify"
	"github.com/example/plotsketch/internal/render"
)

var toolbarWidth = 92

const buttonHeight = 26

var (
	toolbarBackground = color.RGBA{52, 56, 64, 255}
	buttonIdle        = color.RGBA{72, 78, 88, 255}
	buttonActive      = color.RGBA{30, 120, 255, 255}
	buttonHover       = color.RGBA{90, 98, 110, 255}
	buttonText        = color.RGBA{235, 238, 242, 255}
)

// UI owns the window state around one editor session.
type UI struct {
	ed       *editor.Editor
	output   string
	notifier *notify.Notifier
	onClose  func()
}

// Option modifies a UI during creation.
type Option func(*UI)

// WithEditor sets the editor session driven by the window.
func WithEditor(ed *editor.Editor) Option { return func(u *UI) { u.ed = ed } }

// WithOutput sets the document path used when saving.
func WithOutput(path string) Option { return func(u *UI) { u.output = path } }

// WithNotifier registers the desktop notifier for save/export/copy events.
func WithNotifier(n *notify.Notifier) Option { return func(u *UI) { u.notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(u *UI) { u.onClose = fn } }

// New creates a UI with the provided options.
func New(opts ...Option) *UI {
	u := &UI{}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Run executes the UI loop using shiny's driver. It blocks until the window
// closes.
func (u *UI) Run() { driver.Main(u.main) }

type button struct {
	label string
	rect  image.Rectangle
	tool  editor.Tool // empty for action buttons
	act   func()
}

func (u *UI) main(s screen.Screen) {
	if u.ed == nil {
		log.Fatal("ui: no editor configured")
	}
	defer func() {
		if u.onClose != nil {
			u.onClose()
		}
	}()

	// Widen the toolbar if a label would not fit.
	d := &font.Drawer{Face: basicfont.Face7x13}
	for _, lbl := range []string{"S:Select", "P:Point", "L:Line", "A:Area", "T:Text", "B:Brace", "F:Func", "Undo", "Redo", "Clear", "Save", "Export", "Copy"} {
		if w := d.MeasureString(lbl).Ceil() + 12; w > toolbarWidth {
			toolbarWidth = w
		}
	}

	canvas := u.ed.Render()
	width := canvas.Bounds().Dx() + toolbarWidth
	height := canvas.Bounds().Dy()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "PlotSketch"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	var message string
	var messageUntil time.Time
	flash := func(format string, args ...any) {
		message = fmt.Sprintf(format, args...)
		log.Print(message)
		messageUntil = time.Now().Add(2 * time.Second)
	}

	save := func() {
		if u.output == "" {
			flash("no output path configured")
			return
		}
		f, err := os.Create(u.output)
		if err != nil {
			log.Printf("save: %v", err)
			return
		}
		if err := u.ed.Save(f); err != nil {
			log.Printf("save: %v", err)
			f.Close()
			return
		}
		if err := f.Close(); err != nil {
			log.Printf("save: closing file: %v", err)
			return
		}
		flash("saved %s", u.output)
		u.notifier.Save(u.output)
	}

	export := func() {
		path := exportPath(u.output)
		img := render.Frame(u.ed.Render(), render.DefaultFrameOptions())
		f, err := os.Create(path)
		if err != nil {
			log.Printf("export: %v", err)
			return
		}
		if err := png.Encode(f, img); err != nil {
			log.Printf("export: %v", err)
			f.Close()
			return
		}
		if err := f.Close(); err != nil {
			log.Printf("export: closing file: %v", err)
			return
		}
		flash("exported %s", path)
		u.notifier.Export(path, img)
	}

	copyImage := func() {
		if err := clipboard.WriteImage(u.ed.Render()); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		flash("rendering copied to clipboard")
		u.notifier.Copy("rendering")
	}

	buttons := []*button{
		{label: "S:Select", tool: editor.ToolSelect},
		{label: "P:Point", tool: editor.ToolPoint},
		{label: "L:Line", tool: editor.ToolLine},
		{label: "A:Area", tool: editor.ToolArea},
		{label: "T:Text", tool: editor.ToolText},
		{label: "B:Brace", tool: editor.ToolBrace},
		{label: "F:Func", tool: editor.ToolFunc},
		{label: "Undo", act: func() { u.ed.Undo() }},
		{label: "Redo", act: func() { u.ed.Redo() }},
		{label: "Clear", act: func() { u.ed.ClearAll() }},
		{label: "Save", act: save},
		{label: "Export", act: export},
		{label: "Copy", act: copyImage},
	}
	for i := range buttons {
		buttons[i].rect = image.Rect(4, 8+i*(buttonHeight+4), toolbarWidth-4, 8+i*(buttonHeight+4)+buttonHeight)
	}

	hover := -1
	pressed := false

	repaint := func() { w.Send(paint.Event{}) }

	handleKey := func(e key.Event) {
		if e.Direction == key.DirRelease {
			return
		}
		if e.Modifiers&key.ModControl != 0 {
			switch e.Rune {
			case 'z', 'Z':
				u.ed.Undo()
			case 'y', 'Y':
				u.ed.Redo()
			case 's', 'S':
				save()
			case 'c', 'C':
				copyImage()
			case 'e', 'E':
				export()
			}
			repaint()
			return
		}
		switch {
		case e.Code == key.CodeDeleteForward || e.Code == key.CodeDeleteBackspace:
			u.ed.DeleteSelected()
		case e.Rune == 's' || e.Rune == 'S':
			u.ed.SetTool(editor.ToolSelect)
		case e.Rune == 'p' || e.Rune == 'P':
			u.ed.SetTool(editor.ToolPoint)
		case e.Rune == 'l' || e.Rune == 'L':
			u.ed.SetTool(editor.ToolLine)
		case e.Rune == 'a' || e.Rune == 'A':
			u.ed.SetTool(editor.ToolArea)
		case e.Rune == 't' || e.Rune == 'T':
			u.ed.SetTool(editor.ToolText)
		case e.Rune == 'b' || e.Rune == 'B':
			u.ed.SetTool(editor.ToolBrace)
		case e.Rune == 'f' || e.Rune == 'F':
			u.ed.SetTool(editor.ToolFunc)
		}
		repaint()
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			repaint()
		case key.Event:
			handleKey(e)
		case mouse.Event:
			p := image.Point{int(e.X), int(e.Y)}
			if p.X < toolbarWidth {
				hover = -1
				for i, b := range buttons {
					if p.In(b.rect) {
						hover = i
						if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
							if b.act != nil {
								b.act()
							} else {
								u.ed.SetTool(b.tool)
							}
						}
						break
					}
				}
				repaint()
				continue
			}
			cx, cy := p.X-toolbarWidth, p.Y
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				pressed = true
				u.ed.PointerDown(cx, cy)
			case e.Direction == mouse.DirNone && pressed:
				u.ed.PointerMove(cx, cy)
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
				pressed = false
				u.ed.PointerUp(cx, cy)
			default:
				continue
			}
			repaint()
		case paint.Event:
			canvas := u.ed.Render()
			frame := image.NewRGBA(image.Rect(0, 0, canvas.Bounds().Dx()+toolbarWidth, canvas.Bounds().Dy()))
			drawToolbar(frame, buttons, u.ed.Tool(), hover)
			draw.Draw(frame, canvas.Bounds().Add(image.Pt(toolbarWidth, 0)), canvas, image.Point{}, draw.Src)
			if message != "" && time.Now().Before(messageUntil) {
				drawMessage(frame, message)
			}
			uploadFrame(s, w, frame)
		}
	}
}

func drawToolbar(dst *image.RGBA, buttons []*button, active editor.Tool, hover int) {
	bar := image.Rect(0, 0, toolbarWidth, dst.Bounds().Dy())
	draw.Draw(dst, bar, image.NewUniform(toolbarBackground), image.Point{}, draw.Src)
	for i, b := range buttons {
		bg := buttonIdle
		if b.tool != "" && b.tool == active {
			bg = buttonActive
		} else if i == hover {
			bg = buttonHover
		}
		draw.Draw(dst, b.rect, image.NewUniform(bg), image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(buttonText), Face: basicfont.Face7x13,
			Dot: fixed.P(b.rect.Min.X+6, b.rect.Min.Y+17)}
		d.DrawString(b.label)
	}
}

func drawMessage(dst *image.RGBA, msg string) {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString(msg).Ceil()
	b := dst.Bounds()
	box := image.Rect(b.Max.X-w-20, b.Max.Y-26, b.Max.X-4, b.Max.Y-4)
	draw.Draw(dst, box, image.NewUniform(toolbarBackground), image.Point{}, draw.Src)
	d.Dst = dst
	d.Src = image.NewUniform(buttonText)
	d.Dot = fixed.P(box.Min.X+8, box.Min.Y+15)
	d.DrawString(msg)
}

func uploadFrame(s screen.Screen, w screen.Window, frame *image.RGBA) {
	buf, err := s.NewBuffer(frame.Bounds().Size())
	if err != nil {
		log.Printf("paint: %v", err)
		return
	}
	defer buf.Release()
	draw.Draw(buf.RGBA(), buf.Bounds(), frame, image.Point{}, draw.Src)
	w.Upload(image.Point{}, buf, buf.Bounds())
	w.Publish()
}

// exportPath derives the PNG path next to the document path, or a default
// when no document path is set.
func exportPath(output string) string {
	if output == "" {
		return "plotsketch.png"
	}
	ext := ".json"
	if len(output) > len(ext) && output[len(output)-len(ext):] == ext {
		return output[:len(output)-len(ext)] + ".png"
	}
	return output + ".png"
}
