// Package viewer renders the simulation with raylib and translates player
// input into simulation calls.
package viewer

// Camera converts between field and screen coordinates. The field origin
// sits at the screen center with the y axis pointing up; raylib's y axis
// points down from the top-left corner.
type Camera struct {
	ViewportW, ViewportH float32
}

// NewCamera creates a camera for the given viewport.
func NewCamera(viewportW, viewportH float32) *Camera {
	return &Camera{ViewportW: viewportW, ViewportH: viewportH}
}

// WorldToScreen converts field coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return c.ViewportW/2 + wx, c.ViewportH/2 - wy
}

// ScreenToWorld converts screen coordinates to field coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return sx - c.ViewportW/2, c.ViewportH/2 - sy
}

// ScreenHeading converts a field heading to the equivalent screen-space
// angle. The y flip mirrors rotation direction.
func (c *Camera) ScreenHeading(heading float32) float32 {
	return -heading
}

// Resize updates the viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}
