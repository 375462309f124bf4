package engine

import "fmt"

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is a half-open box: Min is inside, Max is not.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

func (r Rect) Dx() int { return r.Max.X - r.Min.X }
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

// Layout places the grid centred on a fixed-size screen.
type Layout struct {
	ScreenWidth  int `json:"screen_width" yaml:"screen_width"`
	ScreenHeight int `json:"screen_height" yaml:"screen_height"`
	PanelSize    int `json:"panel_size" yaml:"panel_size"`
	PanelGap     int `json:"panel_gap" yaml:"panel_gap"`

	rows, cols int
}

// DefaultLayout is the 800x600 screen with a 3x3 grid of 100px panels.
func DefaultLayout() Layout {
	return Layout{ScreenWidth: 800, ScreenHeight: 600, PanelSize: 100, PanelGap: 20, rows: 3, cols: 3}
}

func (l Layout) validate(rows, cols int) error {
	if l.PanelSize <= 0 || l.PanelGap < 0 {
		return fmt.Errorf("%w: panel size %d / gap %d", ErrInvalidRules, l.PanelSize, l.PanelGap)
	}
	w := cols*l.PanelSize + (cols-1)*l.PanelGap
	h := rows*l.PanelSize + (rows-1)*l.PanelGap
	if w > l.ScreenWidth || h > l.ScreenHeight {
		return fmt.Errorf("%w: %dx%d grid needs %dx%d, screen is %dx%d",
			ErrInvalidRules, rows, cols, w, h, l.ScreenWidth, l.ScreenHeight)
	}
	return nil
}

// withGrid binds the layout to a grid shape. A layout without one has no panels.
func (l Layout) withGrid(rows, cols int) Layout {
	l.rows, l.cols = rows, cols
	return l
}

func (l Layout) origin() Point {
	return Point{
		X: (l.ScreenWidth - (l.cols*l.PanelSize + (l.cols-1)*l.PanelGap)) / 2,
		Y: (l.ScreenHeight - (l.rows*l.PanelSize + (l.rows-1)*l.PanelGap)) / 2,
	}
}

// Grid reports the bound grid shape.
func (l Layout) Grid() (rows, cols int) { return l.rows, l.cols }

// Bounds returns the screen rectangle of panel i in row-major order.
func (l Layout) Bounds(i int) Rect {
	if l.cols <= 0 {
		return Rect{}
	}
	o := l.origin()
	row, col := i/l.cols, i%l.cols
	min := Point{
		X: o.X + col*(l.PanelSize+l.PanelGap),
		Y: o.Y + row*(l.PanelSize+l.PanelGap),
	}
	return Rect{Min: min, Max: Point{X: min.X + l.PanelSize, Y: min.Y + l.PanelSize}}
}

// HitTest maps a screen point to a panel index. Points in the gaps hit nothing.
func (l Layout) HitTest(p Point) (int, bool) {
	for i := 0; i < l.rows*l.cols; i++ {
		if l.Bounds(i).Contains(p) {
			return i, true
		}
	}
	return -1, false
}
