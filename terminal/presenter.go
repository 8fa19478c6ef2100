package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
)

// upperHalf draws the top sample in the foreground and the bottom one in the background
const upperHalf = '▀'

// Presenter paints a raster into screen cells
// Each cell averages alpha over two CellWidth x CellWidth blocks and shades
// the dot color over the background by that coverage
type Presenter struct {
	screen tcell.Screen
	dot    gg.RGBA
	bg     gg.RGBA
	blank  tcell.Style

	// cells painted by the last Present, cleared by Blank
	cols, rows int
}

// NewPresenter creates a presenter painting dotHex over bgHex
func NewPresenter(screen tcell.Screen, dotHex, bgHex string) *Presenter {
	p := &Presenter{
		screen: screen,
		dot:    gg.Hex(dotHex),
		bg:     gg.Hex(bgHex),
	}
	p.blank = tcell.StyleDefault.Background(p.shade(0))
	return p
}

// Present implements render.Presenter
func (p *Presenter) Present(pix *gg.Pixmap) {
	if pix == nil {
		return
	}
	w, h := p.screen.Size()
	cols := min(w, pix.Width()/CellWidth)
	rows := min(h, pix.Height()/CellHeight)

	data := pix.Data()
	stride := pix.Width() * 4
	half := CellHeight / 2

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := coverage(data, stride, cx*CellWidth, cy*CellHeight, CellWidth, half)
			bottom := coverage(data, stride, cx*CellWidth, cy*CellHeight+half, CellWidth, half)
			if top == 0 && bottom == 0 {
				p.screen.SetContent(cx, cy, ' ', nil, p.blank)
				continue
			}
			style := tcell.StyleDefault.Foreground(p.shade(top)).Background(p.shade(bottom))
			p.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}

	// Shrinking rasters leave stale cells behind otherwise
	p.clear(cols, rows, p.cols, p.rows)
	p.cols, p.rows = cols, rows
	p.screen.Show()
}

// Blank implements render.Presenter
func (p *Presenter) Blank() {
	p.clear(0, 0, p.cols, p.rows)
	p.cols, p.rows = 0, 0
	p.screen.Show()
}

// clear blanks the area of the old cols x rows block outside the new one
func (p *Presenter) clear(newCols, newRows, oldCols, oldRows int) {
	for cy := 0; cy < oldRows; cy++ {
		for cx := 0; cx < oldCols; cx++ {
			if cx < newCols && cy < newRows {
				continue
			}
			p.screen.SetContent(cx, cy, ' ', nil, p.blank)
		}
	}
}

// shade blends the dot color over the background by a in [0,1]
func (p *Presenter) shade(a float64) tcell.Color {
	c := p.bg.Lerp(p.dot, a)
	return tcell.NewRGBColor(int32(c.R*255+0.5), int32(c.G*255+0.5), int32(c.B*255+0.5))
}

// coverage returns the mean alpha of a w x h block at (x, y)
func coverage(data []uint8, stride, x, y, w, h int) float64 {
	var sum int
	for row := y; row < y+h; row++ {
		i := row*stride + x*4 + 3
		for col := 0; col < w; col++ {
			if i < len(data) {
				sum += int(data[i])
			}
			i += 4
		}
	}
	return float64(sum) / float64(w*h*255)
}
