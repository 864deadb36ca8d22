package tui

import (
	"math"
	"strings"
)

// canvas is a character grid in (h, ln P) coordinates.
type canvas struct {
	w, h       int
	cells      [][]rune
	xMin, xMax float64
	yMin, yMax float64
}

func newCanvas(w, h int, xMin, xMax, yMin, yMax float64) *canvas {
	c := &canvas{w: w, h: h, xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax}
	c.cells = make([][]rune, h)
	for i := range c.cells {
		c.cells[i] = []rune(strings.Repeat(" ", w))
	}
	return c
}

// project maps enthalpy and pressure to a cell. ok is false off the grid.
func (c *canvas) project(hv, p float64) (x, y int, ok bool) {
	if !(p > 0) || c.xMax <= c.xMin || c.yMax <= c.yMin {
		return 0, 0, false
	}
	fx := (hv - c.xMin) / (c.xMax - c.xMin)
	fy := (math.Log(p) - c.yMin) / (c.yMax - c.yMin)
	x = int(math.Round(fx * float64(c.w-1)))
	y = c.h - 1 - int(math.Round(fy*float64(c.h-1)))
	return x, y, x >= 0 && x < c.w && y >= 0 && y < c.h
}

func (c *canvas) set(x, y int, r rune) {
	if x >= 0 && x < c.w && y >= 0 && y < c.h {
		c.cells[y][x] = r
	}
}

func (c *canvas) plot(hv, p float64, r rune) {
	if x, y, ok := c.project(hv, p); ok {
		c.set(x, y, r)
	}
}

func (c *canvas) line(h1, p1, h2, p2 float64, r rune) {
	x1, y1, ok1 := c.project(h1, p1)
	x2, y2, ok2 := c.project(h2, p2)
	if !ok1 || !ok2 {
		return
	}

	dx, dy := intAbs(x2-x1), -intAbs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		if c.cells[y1][x1] == ' ' {
			c.set(x1, y1, r)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func (c *canvas) rows() []string {
	out := make([]string, len(c.cells))
	for i, row := range c.cells {
		out[i] = string(row)
	}
	return out
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
