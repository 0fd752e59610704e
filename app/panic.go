package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"bookcosmos/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// guard turns a panic inside step into a logged stack, a panic screen and
// an error that stops the runner.
func guard(h hal.HAL, step hal.Step) hal.Step {
	return func(dt time.Duration) (err error) {
		defer func() {
			if v := recover(); v != nil {
				stack := debug.Stack()
				showPanic(h, v, stack)
				err = fmt.Errorf("app: panic: %v", v)
			}
		}()
		return step(dt)
	}
}

func showPanic(h hal.HAL, v any, stack []byte) {
	var lines []string
	lines = append(lines, "Cosmos Panic:", fmt.Sprintf("panic: %v", v))
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	if h.Display() == nil {
		return
	}
	fb := h.Display().Framebuffer()
	if fb == nil {
		return
	}
	fb.ClearRGB(255, 255, 255)

	font := &proggy.TinySZ8pt7b
	const fontHeight = int16(10)
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}

	d := &fbDisplayer{fb: fb}
	fg := color.RGBA{A: 255}
	cols := int16(fb.Width()) / fontWidth
	maxH := int16(fb.Height())
	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 0, y+fontHeight-2, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " \t")
		}
	}
	_ = fb.Present()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 {
		n = 1
	}
	var i int
	for count := int16(0); i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
