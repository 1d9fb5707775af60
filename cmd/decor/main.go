//go:build js && wasm

// Command decor animates the background canvases of the site. It is built
// with GOOS=js GOARCH=wasm and loaded by static/js/decor.js.
package main

import (
	"math"
	"strconv"
	"syscall/js"
	"time"

	"github.com/tradesy30/portfolio/internal/sprites"
)

var iconSources = []string{
	"/static/icons/go.svg",
	"/static/icons/gin.svg",
	"/static/icons/htmx.svg",
	"/static/icons/wasm.svg",
	"/static/icons/sqlite.svg",
	"/static/icons/tailwind.svg",
	"/static/icons/git.svg",
	"/static/icons/javascript.svg",
	"/static/icons/docker.svg",
}

const resizeDebounce = 250 * time.Millisecond

var (
	window   = js.Global()
	document = js.Global().Get("document")
)

type drawFunc func(ctx js.Value, s *sprites.Sprite, dark bool)

// layer is one canvas with its own sprite field and frame callback.
type layer struct {
	canvas js.Value
	ctx    js.Value
	field  *sprites.Field
	gate   *sprites.FrameGate
	draw   drawFunc

	frame js.Func
	rafID js.Value
}

func main() {
	var layers []*layer

	if l := newLayer("stars-canvas", sprites.StarParams(0, 0, 0, 0), drawStar); l != nil {
		layers = append(layers, l)
		l.start()
	}

	loadImages(iconSources, func(images []js.Value) {
		l := newLayer("icons-canvas", sprites.IconParams(len(images)), iconDrawer(images))
		if l == nil {
			return
		}
		layers = append(layers, l)
		l.start()
	})

	resize := sprites.NewDebouncer(resizeDebounce, func() {
		for _, l := range layers {
			l.resize()
		}
	})
	onResize := js.FuncOf(func(this js.Value, args []js.Value) any {
		resize.Trigger()
		return nil
	})
	window.Call("addEventListener", "resize", onResize)

	onHide := js.FuncOf(func(this js.Value, args []js.Value) any {
		resize.Stop()
		for _, l := range layers {
			l.stop()
		}
		return nil
	})
	window.Call("addEventListener", "pagehide", onHide)

	<-make(chan struct{})
}

// newLayer returns nil when the canvas or its 2D context is unavailable.
func newLayer(id string, p sprites.Params, draw drawFunc) *layer {
	canvas := document.Call("getElementById", id)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil
	}
	ctx := canvas.Call("getContext", "2d", map[string]any{
		"alpha":              true,
		"willReadFrequently": false,
	})
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil
	}
	l := &layer{canvas: canvas, ctx: ctx, draw: draw}
	w, h := l.fit()
	l.field = sprites.NewField(w, h, p, nil)
	return l
}

// fit sizes the backing store to the viewport at device pixel ratio and
// returns the viewport size in CSS pixels.
func (l *layer) fit() (float64, float64) {
	scale := window.Get("devicePixelRatio").Float()
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	w := window.Get("innerWidth").Float()
	h := window.Get("innerHeight").Float()

	l.canvas.Set("width", int(w*scale))
	l.canvas.Set("height", int(h*scale))
	style := l.canvas.Get("style")
	style.Set("width", strconv.FormatFloat(w, 'f', -1, 64)+"px")
	style.Set("height", strconv.FormatFloat(h, 'f', -1, 64)+"px")
	l.ctx.Call("setTransform", scale, 0, 0, scale, 0, 0)
	return w, h
}

func (l *layer) resize() {
	w, h := l.fit()
	l.field.Resize(w, h)
}

func (l *layer) start() {
	l.gate = sprites.NewFrameGate(sprites.FPS, window.Get("performance").Call("now").Float())
	l.frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		now := args[0].Float()
		if timeScale, ok := l.gate.Tick(now); ok {
			l.render(timeScale)
		}
		l.rafID = window.Call("requestAnimationFrame", l.frame)
		return nil
	})
	l.rafID = window.Call("requestAnimationFrame", l.frame)
}

func (l *layer) render(timeScale float64) {
	l.ctx.Call("clearRect", 0, 0, l.field.Width, l.field.Height)
	l.field.Step(timeScale)
	dark := isDark()
	for i := range l.field.Sprites {
		l.draw(l.ctx, &l.field.Sprites[i], dark)
	}
}

func (l *layer) stop() {
	if !l.rafID.IsUndefined() {
		window.Call("cancelAnimationFrame", l.rafID)
	}
	l.frame.Release()
}

func isDark() bool {
	return document.Get("documentElement").Get("classList").Call("contains", "dark").Bool()
}

// loadImages calls done once every source has loaded or failed. Failed
// images are kept and skipped when drawing.
func loadImages(srcs []string, done func([]js.Value)) {
	images := make([]js.Value, len(srcs))
	pending := len(srcs)
	var settle js.Func
	settle = js.FuncOf(func(this js.Value, args []js.Value) any {
		pending--
		if pending == 0 {
			settle.Release()
			done(images)
		}
		return nil
	})
	for i, src := range srcs {
		img := window.Get("Image").New()
		img.Set("onload", settle)
		img.Set("onerror", settle)
		img.Set("src", src)
		images[i] = img
	}
}

func drawStar(ctx js.Value, s *sprites.Sprite, dark bool) {
	color := "#0c4a6e"
	if dark {
		color = "#38bdf8"
	}
	ctx.Call("save")
	ctx.Set("shadowColor", color)
	ctx.Set("fillStyle", color)
	for _, g := range []struct{ alpha, blur, size float64 }{
		{0.5, 15, 0.8},
		{0.7, 8, 0.6},
		{0.8, 4, 0.4},
		{1, 2, 0.2},
	} {
		ctx.Set("globalAlpha", s.Opacity*g.alpha)
		ctx.Set("shadowBlur", s.Radius*g.blur)
		ctx.Call("beginPath")
		ctx.Call("arc", s.X, s.Y, s.Radius*g.size, 0, math.Pi*2)
		ctx.Call("fill")
	}
	ctx.Call("restore")
}

func iconDrawer(images []js.Value) drawFunc {
	return func(ctx js.Value, s *sprites.Sprite, dark bool) {
		box := sprites.IconBoxSize
		size := sprites.IconSize

		boxColor, glow, border, iconGlow := "rgba(23, 23, 23, 0.3)", "rgba(0, 0, 0, 0.15)", "rgba(0, 0, 0, 0.1)", "rgba(0, 0, 0, 0.2)"
		if dark {
			boxColor, glow, border, iconGlow = "rgba(17, 24, 39, 0.3)", "rgba(255, 255, 255, 0.15)", "rgba(255, 255, 255, 0.1)", "rgba(255, 255, 255, 0.2)"
		}

		ctx.Call("save")
		ctx.Call("translate", s.X, s.Y)
		ctx.Call("rotate", s.Rotation)
		ctx.Set("globalAlpha", s.Opacity)

		ctx.Set("shadowColor", glow)
		ctx.Set("fillStyle", boxColor)
		for _, blur := range []float64{20, 10} {
			ctx.Set("shadowBlur", blur)
			boxPath(ctx, box)
			ctx.Call("fill")
		}
		ctx.Set("strokeStyle", border)
		ctx.Set("lineWidth", 1)
		ctx.Call("stroke")

		img := images[s.Kind%len(images)]
		if img.Get("complete").Bool() && img.Get("naturalWidth").Int() > 0 {
			ctx.Set("shadowColor", iconGlow)
			for _, g := range []struct{ blur, alpha, grow float64 }{
				{15, 0.5, 2},
				{8, 0.7, 1},
				{4, 1, 0},
			} {
				ctx.Set("shadowBlur", g.blur)
				ctx.Set("globalAlpha", s.Opacity*g.alpha)
				ctx.Call("drawImage", img, -size/2-g.grow, -size/2-g.grow, size+g.grow*2, size+g.grow*2)
			}
		}
		ctx.Call("restore")
	}
}

// boxPath traces the rounded icon box, falling back to a plain rectangle in
// browsers without roundRect.
func boxPath(ctx js.Value, box float64) {
	ctx.Call("beginPath")
	if ctx.Get("roundRect").Type() == js.TypeFunction {
		ctx.Call("roundRect", -box/2, -box/2, box, box, 8)
		return
	}
	ctx.Call("rect", -box/2, -box/2, box, box)
}
