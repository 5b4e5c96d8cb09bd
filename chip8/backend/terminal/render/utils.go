package render

// HalfBlock returns the character that shows two vertically stacked
// monochrome pixels in one terminal cell, drawn in the foreground color.
func HalfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// Clip shortens text to at most width runes, marking the cut with an ellipsis.
func Clip(text string, width int) string {
	runes := []rune(text)
	if width <= 0 {
		return ""
	}
	if len(runes) <= width {
		return text
	}
	if width > 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}
