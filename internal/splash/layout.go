package splash

import "fmt"

// Rect is a frame in logical units.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the midpoint of r.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Color is an opaque-by-default RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Hex returns the #RRGGBB form of c.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// BrandGreen is the splash background, shared with the native launch screen
// so there is no flash between the two.
var BrandGreen = Color{R: 15, G: 123, B: 100, A: 255}

// DefaultLogoSize is the side of the square logo frame.
const DefaultLogoSize = 120.0

// Image is a bundled image resource.
type Image struct {
	Name string
}

// LogoPlacement is where the logo sits inside the overlay.
type LogoPlacement struct {
	Image Image
	Frame Rect
}

// Layout describes the overlay view: it covers Bounds with Background and,
// when Logo is set, shows the logo centered.
type Layout struct {
	Bounds     Rect
	Background Color
	Logo       *LogoPlacement
}

// ComputeLayout lays out the overlay over bounds. A nil logo yields a solid
// color overlay.
func ComputeLayout(bounds Rect, background Color, logo *Image, logoSize float64) Layout {
	l := Layout{Bounds: bounds, Background: background}
	if logo == nil {
		return l
	}
	cx, cy := bounds.Center()
	l.Logo = &LogoPlacement{
		Image: *logo,
		Frame: Rect{X: cx - logoSize/2, Y: cy - logoSize/2, Width: logoSize, Height: logoSize},
	}
	return l
}
