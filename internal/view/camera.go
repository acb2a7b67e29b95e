package view

// camera maps world coordinates to screen pixels. The world is unbounded,
// so the camera simply keeps the player in the middle of the viewport.
type camera struct {
	x, y float64
	w, h int
}

func (c *camera) follow(x, y float64) {
	c.x, c.y = x, y
}

func (c *camera) resize(w, h int) {
	c.w, c.h = w, h
}

func (c *camera) toScreen(wx, wy float64) (float32, float32) {
	return float32(wx - c.x + float64(c.w)/2), float32(wy - c.y + float64(c.h)/2)
}

func (c *camera) toWorld(sx, sy int) (float64, float64) {
	return float64(sx) - float64(c.w)/2 + c.x, float64(sy) - float64(c.h)/2 + c.y
}

// onScreen reports whether a circle at (wx,wy) with radius r touches the viewport.
func (c *camera) onScreen(wx, wy, r float64) bool {
	sx, sy := c.toScreen(wx, wy)
	rf := float32(r)
	return sx+rf >= 0 && sy+rf >= 0 && sx-rf <= float32(c.w) && sy-rf <= float32(c.h)
}
