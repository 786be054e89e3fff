package ui2d

import "fmt"

// textScale draws the 7x13 atlas at native size.
const textScale = float32(1)

// Context is the main UI context that manages rendering and input.
type Context struct {
	renderer *Renderer
	input    *InputState

	// Active/hot widget tracking for interaction
	hotWidget    string
	activeWidget string

	windows   map[string]*WindowState
	listBoxes map[string]*ListBoxState

	currentWindow  *WindowState
	currentListBox *ListBoxState

	// Screen areas covered by UI this frame.
	covered []Rect
	tooltip string

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID   string
	X, Y float32
	W, H float32
}

// NewContext creates a UI context with its renderer. Requires a GL context.
func NewContext(width, height int) (*Context, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	return &Context{
		renderer:  r,
		input:     &InputState{},
		windows:   make(map[string]*WindowState),
		listBoxes: make(map[string]*ListBoxState),
	}, nil
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Close()
	}
}

// Renderer returns the underlying renderer.
func (c *Context) Renderer() *Renderer {
	return c.renderer
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.renderer.Begin()
	c.covered = c.covered[:0]
	c.tooltip = ""
}

// End draws the pending tooltip and finishes the UI frame.
func (c *Context) End() {
	if c.tooltip != "" {
		w, h := c.renderer.MeasureText(c.tooltip, textScale)
		x, y := c.input.MouseX+14, c.input.MouseY+16
		c.renderer.DrawPanel(x, y, w+10, h+8, ColorTooltip, ColorPanelBorder)
		c.renderer.DrawText(x+5, y+4, c.tooltip, textScale, ColorText)
	}
	c.renderer.End()
	c.input.EndFrame()
}

// MouseOverUI reports whether the mouse is over a window drawn this frame.
// The previous frame's windows count until Begin runs again.
func (c *Context) MouseOverUI() bool {
	for _, r := range c.covered {
		if r.Contains(c.input.MouseX, c.input.MouseY) {
			return true
		}
	}
	return false
}

// BeginWindow starts a docked window at a fixed position.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id}
		c.windows[id] = ws
	}
	ws.X, ws.Y, ws.W, ws.H = x, y, w, h
	c.currentWindow = ws
	c.covered = append(c.covered, Rect{x, y, w, h})

	c.renderer.DrawPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)

	titleBarH := float32(0)
	if title != "" {
		titleBarH = 24
		c.renderer.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorButtonNormal)
		_, textH := c.renderer.MeasureText(title, textScale)
		c.renderer.DrawText(ws.X+8, ws.Y+(titleBarH-textH)/2, title, textScale, ColorText)
	}

	c.cursorX = ws.X + 8
	c.cursorY = ws.Y + titleBarH + 8
	c.rowH = 0
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + 8
	c.cursorY += c.rowH + 4
	c.rowH = height
}

// Heading draws a section title on its own row.
func (c *Context) Heading(text string) {
	c.Row(16)
	c.LabelColored(text, ColorTextDim)
}

// Button draws a button and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	return c.ButtonActive(id, width, label, false)
}

// ButtonActive draws a button that stays highlighted while active is set.
func (c *Context) ButtonActive(id string, width float32, label string, active bool) bool {
	if c.currentWindow == nil {
		return false
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = 26
	}
	if width == 0 {
		width = c.currentWindow.X + c.currentWindow.W - 8 - x
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}

	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	clicked := false

	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed || c.input.MouseLeftClicked {
			c.activeWidget = fullID
			clicked = true
			// Only one widget gets the click.
			c.input.MouseLeftClicked = false
			c.input.MouseLeftPressed = false
		}
	}

	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	switch {
	case active:
		color = ColorHighlight
	case c.activeWidget == fullID:
		color = ColorButtonActive
	case hovered:
		color = ColorButtonHover
	}

	c.renderer.DrawRect(x, y, width, h, color)
	c.renderer.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)

	textW, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(x+(width-textW)/2, y+(h-textH)/2, label, textScale, ColorText)

	c.cursorX += width + 4

	return clicked
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.renderer.DrawText(c.cursorX, c.cursorY, text, textScale, color)
	w, _ := c.renderer.MeasureText(text, textScale)
	c.cursorX += w + 4
}

// Spacer adds vertical space.
func (c *Context) Spacer(height float32) {
	c.cursorY += height
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + 4
	c.rowH = 0
	x := c.currentWindow.X + 8
	w := c.currentWindow.W - 16
	c.renderer.DrawRect(x, c.cursorY, w, 1, ColorPanelBorder)
	c.cursorY += 4
	c.cursorX = x
}

// Checkbox draws a checkbox and returns its new state.
func (c *Context) Checkbox(id string, label string, checked bool) bool {
	if c.currentWindow == nil {
		return checked
	}

	x := c.cursorX
	y := c.cursorY
	boxSize := float32(16)

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, boxSize, boxSize}

	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)

	if hovered && c.input.MouseLeftPressed {
		c.activeWidget = fullID
	}

	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		if hovered {
			checked = !checked
		}
		c.activeWidget = ""
	}

	bgColor := ColorInputBg
	if hovered {
		bgColor = ColorButtonHover
	}
	c.renderer.DrawRect(x, y, boxSize, boxSize, bgColor)
	c.renderer.DrawRectOutline(x, y, boxSize, boxSize, 1, ColorPanelBorder)

	if checked {
		const inner = 4
		c.renderer.DrawRect(x+inner, y+inner, boxSize-inner*2, boxSize-inner*2, ColorHighlight)
	}

	labelW, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(x+boxSize+6, y+(boxSize-textH)/2, label, textScale, ColorText)

	c.cursorX += boxSize + 6 + labelW + 8

	return checked
}

// Remaining returns the height left in the current window below the current row.
func (c *Context) Remaining() float32 {
	if c.currentWindow == nil {
		return 0
	}
	bottom := c.currentWindow.Y + c.currentWindow.H - 8
	return max(bottom-(c.cursorY+c.rowH+4), 0)
}

// ListBoxState holds state for a scrolling list box.
type ListBoxState struct {
	ScrollY float32
	X, Y    float32
	W, H    float32

	contentH float32
	lastH    float32
}

const listRowH = float32(18)

// BeginListBox starts a scrolling region. Rows outside it are skipped.
func (c *Context) BeginListBox(id string, width, height float32) {
	if c.currentWindow == nil {
		return
	}

	x := c.currentWindow.X + 8
	y := c.cursorY + c.rowH + 4
	if width == 0 {
		width = c.currentWindow.W - 16
	}
	if height == 0 {
		height = 200
	}

	fullID := c.currentWindow.ID + "_" + id
	lb, ok := c.listBoxes[fullID]
	if !ok {
		lb = &ListBoxState{}
		c.listBoxes[fullID] = lb
	}
	lb.X, lb.Y, lb.W, lb.H = x, y, width, height

	if c.input.IsMouseInRect(x, y, width, height) && c.input.ScrollY != 0 {
		lb.ScrollY -= c.input.ScrollY * listRowH * 3
	}
	lb.ScrollY = clampScroll(lb.ScrollY, lb.lastH, height)
	lb.contentH = 0

	c.renderer.DrawRect(x, y, width, height, ColorInputBg)
	c.renderer.DrawRectOutline(x, y, width, height, 1, ColorPanelBorder)

	c.currentListBox = lb
	c.cursorX = x + 4
	c.cursorY = y + 4 - lb.ScrollY
	c.rowH = listRowH
}

func clampScroll(scroll, contentH, viewH float32) float32 {
	limit := contentH + 8 - viewH
	if scroll > limit {
		scroll = limit
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// TreeItem draws one list row indented by depth. A non-empty tooltip shows
// while the row is hovered.
func (c *Context) TreeItem(label string, depth int, color Color, tooltip string) {
	lb := c.currentListBox
	if lb == nil {
		return
	}
	y := c.cursorY
	lb.contentH += listRowH
	c.cursorY += listRowH

	if y < lb.Y+2 || y+listRowH > lb.Y+lb.H-2 {
		return
	}

	x := lb.X + 4 + float32(depth)*12
	if depth > 0 {
		c.renderer.DrawRect(x-8, y+listRowH/2, 5, 1, ColorTextDim)
	}
	hovered := Rect{lb.X, y, lb.W, listRowH}.Contains(c.input.MouseX, c.input.MouseY)
	if hovered {
		c.renderer.DrawRect(lb.X+1, y, lb.W-2, listRowH, ColorButtonHover.WithAlpha(0.5))
		if tooltip != "" {
			c.tooltip = tooltip
		}
	}
	_, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(x, y+(listRowH-textH)/2, label, textScale, color)
}

// EndListBox ends a list box region.
func (c *Context) EndListBox() {
	if c.currentWindow == nil || c.currentListBox == nil {
		return
	}
	lb := c.currentListBox
	lb.lastH = lb.contentH
	c.cursorX = c.currentWindow.X + 8
	c.cursorY = lb.Y + lb.H + 4
	c.rowH = 0
	c.currentListBox = nil
}

// Overlay dims a screen area and centers text over it.
func (c *Context) Overlay(area Rect, text string) {
	c.renderer.DrawRect(area.X, area.Y, area.W, area.H, ColorOverlay)
	w, h := c.renderer.MeasureText(text, textScale)
	c.renderer.DrawText(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, text, textScale, ColorText)
}

// StatusText draws a line of text outside any window.
func (c *Context) StatusText(x, y float32, text string, color Color) {
	c.renderer.DrawText(x, y, text, textScale, color)
}

// GetScreenSize returns the current screen dimensions.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.renderer.GetScreenSize()
	return float32(w), float32(h)
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
