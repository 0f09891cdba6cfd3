package distill

import (
	"fmt"
	"strconv"
)

// distiller drives one invocation: it owns the fingerprinter, the seen
// registry, and the policy. All of its state is created fresh per call and
// discarded afterwards, so separate invocations are fully independent.
type distiller struct {
	opts Options
	fp   *Fingerprinter
	reg  *seenRegistry
	log  Logger
}

func newDistiller(opts Options) *distiller {
	log := opts.Logger
	if log == nil {
		log = NewNoopLogger()
	}
	return &distiller{
		opts: opts,
		fp:   NewFingerprinter(opts.StrictTyping),
		reg:  newSeenRegistry(opts.PositionDependent),
		log:  log,
	}
}

// walk rewrites v into its distilled form. path and depth describe the
// position in the original document; depth selects the registry scope under
// the per-depth policy.
func (d *distiller) walk(v *Value, path string, depth int) *Value {
	switch v.Kind() {
	case KindMap:
		// Map fields are heterogeneous by name, not repeated siblings:
		// no grouping, just recurse preserving field order.
		fields := make([]Field, 0, v.Len())
		for _, f := range v.Fields() {
			fields = append(fields, Field{
				Name:  f.Name,
				Value: d.walk(f.Value, path+"."+f.Name, depth+1),
			})
		}
		return Map(fields...)
	case KindList:
		return d.walkList(v, path, depth)
	default:
		// Primitives pass through unchanged.
		return v
	}
}

func (d *distiller) walkList(v *Value, path string, depth int) *Value {
	elems := v.Elems()
	if len(elems) == 0 {
		return List()
	}

	runs := d.fp.Runs(elems)
	out := make([]*Value, 0, len(runs)*2)

	for _, run := range runs {
		if run.Length < d.opts.RepeatThreshold {
			// Below-threshold repetition is shown in full.
			for i := run.Start; i < run.Start+run.Length; i++ {
				out = append(out, d.walk(elems[i], elemPath(path, i), depth+1))
			}
			continue
		}

		tag := run.Key.Tag()
		if d.reg.observe(depth, run.Key) {
			first := elems[run.Start]
			rep := d.walk(first, elemPath(path, run.Start), depth+1)
			rep = annotate(rep, tag)
			out = append(out, rep, summaryNode(tag, run.Length-1))
			d.log.With(map[string]any{
				"path": path, "tag": tag, "start": run.Start,
				"len": run.Length, "first": valuePreview(first),
			}).Debugf("run summarized, representative shown")
		} else {
			// Structure already shown at this scope: the whole run
			// collapses into the summary.
			out = append(out, summaryNode(tag, run.Length))
			d.log.With(map[string]any{
				"path": path, "tag": tag, "start": run.Start, "len": run.Length,
			}).Debugf("run collapsed, structure already shown")
		}
	}
	return List(out...)
}

// annotate adds the synthetic structure-hash field to a map representative.
// Only composite map nodes can carry the field; list and primitive
// representatives are emitted as-is. An existing field of the same name is
// left untouched.
func annotate(rep *Value, tag string) *Value {
	if rep.Kind() != KindMap {
		return rep
	}
	if _, ok := rep.Get(StructureHashField); ok {
		return rep
	}
	fields := make([]Field, 0, rep.Len()+1)
	fields = append(fields, rep.Fields()...)
	fields = append(fields, Field{Name: StructureHashField, Value: Text(tag)})
	return Map(fields...)
}

// summaryNode builds the synthetic summary entry for count elements not
// individually shown.
func summaryNode(tag string, count int) *Value {
	return Map(
		Field{Name: ItemCountField, Value: Int(int64(count))},
		Field{Name: SummaryField, Value: Text(fmt.Sprintf("%s(x%d)", tag, count))},
	)
}

func elemPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
