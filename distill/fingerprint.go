package distill

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
)

// StructureKey is a canonical, content-independent fingerprint of a value's
// shape. Two values produce equal keys exactly when they are the same
// structure under the active numeric-typing policy. Keys are comparable and
// stable across runs.
type StructureKey struct {
	sum [sha256.Size]byte
}

// Tag renders the key as the short fixed-width hex string used to label
// representatives and summaries in distilled output. The same shape always
// renders the same tag.
func (k StructureKey) Tag() string {
	return hex.EncodeToString(k.sum[:4])
}

func (k StructureKey) String() string {
	return hex.EncodeToString(k.sum[:])
}

// Fingerprinter computes structure keys for one distillation invocation.
// It memoizes per node pointer, so each subtree is canonicalized once even
// when the distiller and run grouper both ask for its key. Not safe for
// concurrent use; create one per invocation.
type Fingerprinter struct {
	strictTyping bool
	memo         map[*Value]StructureKey
}

// NewFingerprinter creates a fingerprinter for the given numeric-typing
// policy. Under strict typing an int-valued field and a float-valued field
// are different structures; otherwise both carry one "number" tag.
func NewFingerprinter(strictTyping bool) *Fingerprinter {
	return &Fingerprinter{
		strictTyping: strictTyping,
		memo:         make(map[*Value]StructureKey, 256),
	}
}

// Key returns the structure key for v. Pure with respect to v's shape:
// concrete content (numbers, string bytes, list lengths) never affects the
// result.
func (fp *Fingerprinter) Key(v *Value) StructureKey {
	// Primitives are cheaper to recompute than to cache.
	if !v.IsContainer() {
		return fp.compute(v)
	}
	if k, ok := fp.memo[v]; ok {
		return k
	}
	k := fp.compute(v)
	fp.memo[v] = k
	return k
}

func (fp *Fingerprinter) compute(v *Value) StructureKey {
	w := newCanonWriter()
	fp.encode(v, w)
	return StructureKey{sum: sha256.Sum256(w.Bytes())}
}

// encode writes the canonical byte form of v's shape. Child shapes are
// embedded as their hex digests, keeping the encoding linear in tree size.
func (fp *Fingerprinter) encode(v *Value, w *canonWriter) {
	switch v.kind {
	case KindNull:
		w.WriteString("null")
	case KindBool:
		w.WriteString("bool")
	case KindInt:
		if fp.strictTyping {
			w.WriteString("int")
		} else {
			w.WriteString("number")
		}
	case KindFloat:
		if fp.strictTyping {
			w.WriteString("float")
		} else {
			w.WriteString("number")
		}
	case KindText:
		w.WriteString("text")
	case KindMap:
		// Field order must not affect the key, so pairs are sorted by
		// name. Presence of a field always does. Names are
		// length-prefixed so no field name can fake a pair boundary.
		pairs := make([]string, 0, len(v.fields))
		for _, f := range v.fields {
			child := fp.Key(f.Value)
			pairs = append(pairs, strconv.Itoa(len(f.Name))+":"+f.Name+":"+child.String())
		}
		sort.Strings(pairs)
		w.WriteString("map{")
		for i, p := range pairs {
			if i > 0 {
				w.WriteByte(',')
			}
			w.WriteString(p)
		}
		w.WriteByte('}')
	case KindList:
		// A list's key depends on the set of distinct element shapes
		// present, not their order or count. The empty list is its own
		// shape.
		if len(v.elems) == 0 {
			w.WriteString("list[]")
			return
		}
		set := make(map[StructureKey]struct{}, 4)
		for _, e := range v.elems {
			set[fp.Key(e)] = struct{}{}
		}
		keys := make([]string, 0, len(set))
		for k := range set {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		w.WriteString("list[")
		for i, k := range keys {
			if i > 0 {
				w.WriteByte(',')
			}
			w.WriteString(k)
		}
		w.WriteByte(']')
	}
}

// canonWriter is a simple append-only buffer for canonical encodings.
type canonWriter struct {
	buf []byte
}

func newCanonWriter() *canonWriter {
	return &canonWriter{buf: make([]byte, 0, 256)}
}

func (w *canonWriter) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

func (w *canonWriter) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

func (w *canonWriter) Bytes() []byte {
	return w.buf
}
