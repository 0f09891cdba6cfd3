package distill

// Run describes a maximal span of consecutive list elements sharing one
// structure key. Runs partition a list's index range completely and
// disjointly; the union of all runs equals the full list.
type Run struct {
	Key    StructureKey
	Start  int
	Length int
}

// Runs scans elems left to right and partitions it into maximal runs of
// key-equal elements. Each element's key is computed once (the
// fingerprinter memoizes container subtrees, so the distiller's later
// recursion does not recompute them).
func (fp *Fingerprinter) Runs(elems []*Value) []Run {
	if len(elems) == 0 {
		return nil
	}
	runs := make([]Run, 0, 4)
	cur := Run{Key: fp.Key(elems[0]), Start: 0, Length: 1}
	for i := 1; i < len(elems); i++ {
		k := fp.Key(elems[i])
		if k == cur.Key {
			cur.Length++
			continue
		}
		runs = append(runs, cur)
		cur = Run{Key: k, Start: i, Length: 1}
	}
	return append(runs, cur)
}
