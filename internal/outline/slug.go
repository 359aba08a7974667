package outline

import "strconv"

// SlugRegistry hands out document-unique anchors. The first header with a
// given base keeps it; later ones get "-2", "-3", ... appended.
type SlugRegistry struct {
	next map[string]int
	used map[string]bool
}

func NewSlugRegistry() *SlugRegistry {
	return &SlugRegistry{
		next: make(map[string]int),
		used: make(map[string]bool),
	}
}

// Assign returns the anchor for the next header with the given base slug.
// A candidate already handed out, for example "a-2" after headers "a", "a"
// and "a 2", is skipped.
func (r *SlugRegistry) Assign(base string) string {
	slug := base
	if n, seen := r.next[base]; seen || r.used[base] {
		if !seen {
			n = 2
		}
		for {
			slug = base + "-" + strconv.Itoa(n)
			n++
			if !r.used[slug] {
				break
			}
		}
		r.next[base] = n
	} else {
		r.next[base] = 2
	}
	r.used[slug] = true
	return slug
}
