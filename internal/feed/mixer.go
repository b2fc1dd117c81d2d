package feed

// Mix merges two ordered article streams into one sequence. With
// interleave set, items alternate one-from-each starting with primary
// until either stream is exhausted, then the remainder of the other is
// appended in its original order. Without interleave the result is all
// of primary followed by all of secondary.
//
// The result is deterministic for identical inputs. Slot positions are
// always computed against the merged sequence's index space, never
// against either source stream's native indices.
func Mix(primary, secondary []Article, interleave bool) []Article {
	merged := make([]Article, 0, len(primary)+len(secondary))

	if !interleave {
		merged = append(merged, primary...)
		merged = append(merged, secondary...)
		return merged
	}

	i, j := 0, 0
	for i < len(primary) && j < len(secondary) {
		merged = append(merged, primary[i])
		i++
		merged = append(merged, secondary[j])
		j++
	}
	merged = append(merged, primary[i:]...)
	merged = append(merged, secondary[j:]...)
	return merged
}
