// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package stream

// DefaultWindowSize is the backpressure window when none is given.
const DefaultWindowSize = 64 * 1024

// BackpressureController tracks bytes in flight against a window.
// Purely advisory: it tells a sender when to pause, and relies on the
// application to report acknowledgements. It never retransmits.
// Not safe for concurrent use.
type BackpressureController struct {
	window   int
	inFlight int
}

// NewBackpressureController returns a controller with the given
// window, or DefaultWindowSize when window is not positive.
func NewBackpressureController(window int) *BackpressureController {
	if window <= 0 {
		window = DefaultWindowSize
	}
	return &BackpressureController{window: window}
}

// CanSend reports whether the window has room for more data.
func (b *BackpressureController) CanSend() bool {
	return b.inFlight < b.window
}

// Available returns the number of bytes that may be sent before the
// window is full.
func (b *BackpressureController) Available() int {
	if b.inFlight >= b.window {
		return 0
	}
	return b.window - b.inFlight
}

// Sent records size bytes entering flight.
func (b *BackpressureController) Sent(size int) {
	b.inFlight += size
}

// Acked records size bytes leaving flight.
func (b *BackpressureController) Acked(size int) {
	b.inFlight -= size
	if b.inFlight < 0 {
		b.inFlight = 0
	}
}

// InFlight returns the current bytes in flight.
func (b *BackpressureController) InFlight() int { return b.inFlight }

// Reset clears the in-flight count.
func (b *BackpressureController) Reset() { b.inFlight = 0 }
