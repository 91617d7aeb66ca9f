package entities

import "fmt"

// Vertical offsets of the go-back control, in pixels
const (
	BackRestOffset  = 5
	BackHoverOffset = -5

	// BackTransitionMillis is the duration of the offset animation
	BackTransitionMillis = 150
)

// BackControl tracks the hover state of the go-back control
type BackControl struct {
	hovered bool
}

// Enter marks the pointer as over the control
func (b *BackControl) Enter() {
	b.hovered = true
}

// Leave marks the pointer as gone
func (b *BackControl) Leave() {
	b.hovered = false
}

// Hovered reports whether the pointer is over the control
func (b *BackControl) Hovered() bool {
	return b.hovered
}

// Offset is the current vertical offset
func (b *BackControl) Offset() int {
	if b.hovered {
		return BackHoverOffset
	}
	return BackRestOffset
}

// Transform is the CSS transform for the current offset
func (b *BackControl) Transform() string {
	return TranslateY(b.Offset())
}

// TranslateY formats a CSS vertical translation
func TranslateY(offset int) string {
	return fmt.Sprintf("translateY(%dpx)", offset)
}
