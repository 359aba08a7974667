package app

// Layout computes the dimensions for each panel.
type Layout struct {
	TreeWidth    int
	OutlineWidth int
	Height       int
	StatusHeight int
}

// ComputeLayout calculates panel dimensions based on total width/height
// and whether the note tree is visible.
func ComputeLayout(totalWidth, totalHeight int, showTree bool, treeWidth int) Layout {
	// During live resizes some terminals momentarily report 0 (or even negative)
	// dimensions; clamp to avoid propagating invalid sizes into panels.
	if totalWidth < 1 {
		totalWidth = 1
	}
	if totalHeight < 2 { // need at least 1 row for content + 1 for status
		totalHeight = 2
	}

	l := Layout{
		StatusHeight: 1,
		Height:       totalHeight - 1, // reserve 1 row for status bar
	}

	remaining := totalWidth

	if showTree {
		l.TreeWidth = treeWidth
		if l.TreeWidth > remaining/2 {
			l.TreeWidth = remaining / 2
		}
		if l.TreeWidth > 0 {
			remaining -= l.TreeWidth - 1 // -1 for border overlap
		}
	}

	l.OutlineWidth = remaining
	if l.OutlineWidth < 1 {
		l.OutlineWidth = 1
	}

	return l
}
