package engine

// Handle is the disposer returned by Start
// Close only ever affects the engine it was issued for
type Handle struct {
	e *Engine
}

// Close tears the engine down; idempotent
// Must run on the scheduler goroutine
func (h *Handle) Close() error {
	h.e.shutdown(nil)
	return nil
}

// Done is closed when the engine returns to Uninitialized
func (h *Handle) Done() <-chan struct{} {
	return h.e.done
}

// Ready is closed when the grid is built and the engine starts running
func (h *Handle) Ready() <-chan struct{} {
	return h.e.ready.Done()
}

// Err reports why the engine stopped, nil for an explicit teardown
// Valid after Done is closed
func (h *Handle) Err() error {
	select {
	case <-h.e.done:
		return h.e.err
	default:
		return nil
	}
}

// Engine returns the engine behind the handle
func (h *Handle) Engine() *Engine {
	return h.e
}
