package globe

// Controls is the interaction-controls object of the rendering toolkit: the
// host input source reports gesture boundaries here, and one subscriber (the
// engine's interaction gate) observes them. The enable flags gate which
// gestures the toolkit acts on; disabled gestures emit no events.
type Controls struct {
	EnableZoom   bool
	EnablePan    bool
	EnableRotate bool

	onStart func()
	onEnd   func()
}

func NewControls() *Controls {
	return &Controls{
		EnableZoom:   true,
		EnablePan:    false,
		EnableRotate: true,
	}
}

// Subscribe registers the start/end handlers, replacing any previous ones.
func (c *Controls) Subscribe(onStart, onEnd func()) {
	c.onStart = onStart
	c.onEnd = onEnd
}

// Unsubscribe detaches the handlers; subsequent gestures are dropped.
func (c *Controls) Unsubscribe() {
	c.onStart = nil
	c.onEnd = nil
}

func (c *Controls) enabled() bool {
	return c.EnableZoom || c.EnablePan || c.EnableRotate
}

// BeginGesture reports that the user started manipulating the view.
// Re-entrant starts (multi-touch) are delivered as-is.
func (c *Controls) BeginGesture() {
	if c.enabled() && c.onStart != nil {
		c.onStart()
	}
}

// EndGesture reports that the user released the view.
func (c *Controls) EndGesture() {
	if c.enabled() && c.onEnd != nil {
		c.onEnd()
	}
}
