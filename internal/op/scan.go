package op

// MaxDepth returns the deepest loop nesting reachable by prog: a single pass
// counting open brackets, where a close bracket with nothing open is ignored.
func MaxDepth(prog []Code) int {
	depth, deepest := 0, 0
	for _, c := range prog {
		switch c {
		case Open:
			if depth++; depth > deepest {
				deepest = depth
			}
		case Close:
			if depth > 0 {
				depth--
			}
		}
	}
	return deepest
}

// Match pairs brackets in prog. The returned slice holds, for every Open or
// Close, the position of its partner, or -1 when it has none; all other
// positions hold -1 as well.
func Match(prog []Code) []int {
	match := make([]int, len(prog))
	open := make([]int, 0, MaxDepth(prog))
	for i, c := range prog {
		match[i] = -1
		switch c {
		case Open:
			open = append(open, i)
		case Close:
			if j := len(open) - 1; j >= 0 {
				match[i], match[open[j]] = open[j], i
				open = open[:j]
			}
		}
	}
	return match
}
