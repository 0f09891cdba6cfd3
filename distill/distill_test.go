package distill

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustDistill(t *testing.T, v *Value, opts Options) *Result {
	t.Helper()
	res, err := Distill(v, opts)
	if err != nil {
		t.Fatalf("Distill failed: %v", err)
	}
	return res
}

func compactJSON(t *testing.T, v *Value) string {
	t.Helper()
	b, err := EncodeJSON(v, "")
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	return string(b)
}

func TestEndToEndScenario(t *testing.T) {
	// {"items": [{"a":1},{"a":2},{"a":3}]} with strict typing and
	// threshold 2: one annotated representative plus a summary of 2.
	input := obj("items", List(
		obj("a", Int(1)), obj("a", Int(2)), obj("a", Int(3)),
	))

	opts := DefaultOptions()
	opts.RepeatThreshold = 2
	res := mustDistill(t, input, opts)

	items, ok := res.Value.Get("items")
	if !ok {
		t.Fatal("distilled output lost the items field")
	}
	if items.Len() != 2 {
		t.Fatalf("expected 2 entries (representative + summary), got %d: %s",
			items.Len(), compactJSON(t, items))
	}

	rep := items.Elems()[0]
	a, ok := rep.Get("a")
	if !ok {
		t.Fatal("representative lost field a")
	}
	if i, _ := a.AsInt(); i != 1 {
		t.Errorf("representative should be the first element, got a=%v", i)
	}
	hash, ok := rep.Get(StructureHashField)
	if !ok {
		t.Fatalf("representative missing %s field", StructureHashField)
	}
	tag, _ := hash.AsText()

	sum := items.Elems()[1]
	count, ok := sum.Get(ItemCountField)
	if !ok {
		t.Fatal("summary missing item_count")
	}
	if n, _ := count.AsInt(); n != 2 {
		t.Errorf("item_count = %d, want 2", n)
	}
	pattern, _ := sum.Get(SummaryField)
	if got, _ := pattern.AsText(); got != tag+"(x2)" {
		t.Errorf("summarized_pattern = %q, want %q", got, tag+"(x2)")
	}
}

func TestThresholdBoundary(t *testing.T) {
	makeRun := func(n int) *Value {
		elems := make([]*Value, n)
		for i := range elems {
			elems[i] = obj("a", Int(int64(i)))
		}
		return List(elems...)
	}

	opts := DefaultOptions()
	opts.RepeatThreshold = 3

	// threshold-1 identical elements: all shown, no summary, no annotation.
	below := mustDistill(t, makeRun(2), opts)
	if below.Value.Len() != 2 {
		t.Fatalf("below threshold: got %d entries, want 2", below.Value.Len())
	}
	for i, e := range below.Value.Elems() {
		if _, ok := e.Get(StructureHashField); ok {
			t.Errorf("below threshold: element %d should not carry %s", i, StructureHashField)
		}
		if _, ok := e.Get(SummaryField); ok {
			t.Errorf("below threshold: element %d looks like a summary", i)
		}
	}

	// Exactly threshold elements: representative plus summary of threshold-1.
	at := mustDistill(t, makeRun(3), opts)
	if at.Value.Len() != 2 {
		t.Fatalf("at threshold: got %d entries, want 2", at.Value.Len())
	}
	count, ok := at.Value.Elems()[1].Get(ItemCountField)
	if !ok {
		t.Fatal("at threshold: second entry is not a summary")
	}
	if n, _ := count.AsInt(); n != 2 {
		t.Errorf("at threshold: item_count = %d, want 2", n)
	}
}

func TestThresholdOneSummarizesSingletons(t *testing.T) {
	opts := DefaultOptions()
	opts.RepeatThreshold = 1

	res := mustDistill(t, List(obj("a", Int(1))), opts)
	if res.Value.Len() != 2 {
		t.Fatalf("got %d entries, want representative + x0 summary", res.Value.Len())
	}
	count, _ := res.Value.Elems()[1].Get(ItemCountField)
	if n, _ := count.AsInt(); n != 0 {
		t.Errorf("item_count = %d, want 0", n)
	}
	pattern, _ := res.Value.Elems()[1].Get(SummaryField)
	if got, _ := pattern.AsText(); !strings.HasSuffix(got, "(x0)") {
		t.Errorf("summarized_pattern = %q, want suffix (x0)", got)
	}
}

func TestSummaryCountsAddUp(t *testing.T) {
	// For a first-seen run of length L >= threshold: item_count + 1 == L.
	for _, length := range []int{2, 5, 17} {
		elems := make([]*Value, length)
		for i := range elems {
			elems[i] = obj("v", Text("x"))
		}
		res := mustDistill(t, List(elems...), DefaultOptions())
		if res.Value.Len() != 2 {
			t.Fatalf("length %d: got %d entries, want 2", length, res.Value.Len())
		}
		count, _ := res.Value.Elems()[1].Get(ItemCountField)
		if n, _ := count.AsInt(); int(n)+1 != length {
			t.Errorf("length %d: item_count %d + 1 != run length", length, n)
		}
	}
}

func TestMixedRunsEmitInOrder(t *testing.T) {
	// A A A B A A: first A-run shows a representative, B is below
	// threshold, the second A-run is already seen and collapses fully.
	a := func(i int64) *Value { return obj("a", Int(i)) }
	b := obj("b", Int(9))
	input := List(a(1), a(2), a(3), b, a(4), a(5))

	res := mustDistill(t, input, DefaultOptions())
	out := res.Value.Elems()
	if len(out) != 4 {
		t.Fatalf("expected [rep, summary, b, summary], got %d: %s",
			len(out), compactJSON(t, res.Value))
	}

	if _, ok := out[0].Get("a"); !ok {
		t.Errorf("entry 0 should be the A representative")
	}
	c1, _ := out[1].Get(ItemCountField)
	if n, _ := c1.AsInt(); n != 2 {
		t.Errorf("first summary item_count = %d, want 2", n)
	}
	if _, ok := out[2].Get("b"); !ok {
		t.Errorf("entry 2 should be the below-threshold B element")
	}
	c2, ok := out[3].Get(ItemCountField)
	if !ok {
		t.Fatalf("entry 3 should be the seen-run summary")
	}
	if n, _ := c2.AsInt(); n != 2 {
		t.Errorf("second summary item_count = %d, want 2 (no representative emitted)", n)
	}
}

func TestPrimitivesPassThrough(t *testing.T) {
	input := obj(
		"n", Null(),
		"b", Bool(true),
		"i", Int(-3),
		"f", Float(2.5),
		"s", Text("keep"),
	)
	res := mustDistill(t, input, DefaultOptions())

	if diff := cmp.Diff(compactJSON(t, input), compactJSON(t, res.Value)); diff != "" {
		t.Errorf("primitive-only document changed (-want +got):\n%s", diff)
	}
}

func TestMapFieldOrderPreserved(t *testing.T) {
	input := obj("z", Int(1), "a", Int(2), "m", Int(3))
	res := mustDistill(t, input, DefaultOptions())

	var names []string
	for _, f := range res.Value.Fields() {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, names); diff != "" {
		t.Errorf("field order changed (-want +got):\n%s", diff)
	}
}

func TestNestedListsDistilledInsideRepresentative(t *testing.T) {
	// The representative itself is distilled recursively, so its inner
	// repetitive list collapses too.
	inner := func() *Value {
		return List(obj("q", Int(1)), obj("q", Int(2)), obj("q", Int(3)))
	}
	input := List(
		obj("rows", inner()),
		obj("rows", inner()),
	)
	res := mustDistill(t, input, DefaultOptions())

	rep := res.Value.Elems()[0]
	rows, ok := rep.Get("rows")
	if !ok {
		t.Fatal("representative lost rows field")
	}
	if rows.Len() != 2 {
		t.Errorf("inner list not distilled: %s", compactJSON(t, rows))
	}
}

func TestInputTreeNotMutated(t *testing.T) {
	input := List(obj("a", Int(1)), obj("a", Int(2)), obj("a", Int(3)))
	before := compactJSON(t, input)

	mustDistill(t, input, DefaultOptions())

	if after := compactJSON(t, input); after != before {
		t.Errorf("input mutated:\nbefore %s\nafter  %s", before, after)
	}
}

func TestInvalidOptionsRejected(t *testing.T) {
	opts := DefaultOptions()
	opts.RepeatThreshold = 0
	if _, err := Distill(Null(), opts); err == nil {
		t.Fatal("expected error for repeat threshold 0")
	}
	if _, err := Distill(nil, DefaultOptions()); err == nil {
		t.Fatal("expected error for nil input")
	}
}

func TestDeterministicOutput(t *testing.T) {
	input := obj(
		"users", List(
			obj("id", Int(1), "name", Text("a")),
			obj("id", Int(2), "name", Text("b")),
			obj("id", Int(3), "name", Text("c")),
		),
		"meta", obj("total", Int(3)),
	)

	var outputs []string
	for i := 0; i < 3; i++ {
		env, _, err := DistillDocument(input, DefaultOptions())
		if err != nil {
			t.Fatalf("DistillDocument failed: %v", err)
		}
		b, err := EncodeJSON(env, "  ")
		if err != nil {
			t.Fatalf("EncodeJSON failed: %v", err)
		}
		outputs = append(outputs, string(b))
	}
	if outputs[0] != outputs[1] || outputs[1] != outputs[2] {
		t.Errorf("repeated runs produced different bytes")
	}
}

// representedElements counts how many original elements one distilled list
// accounts for: each summary contributes item_count, everything else
// contributes one.
func representedElements(list *Value) int64 {
	var total int64
	for _, e := range list.Elems() {
		if c, ok := e.Get(ItemCountField); ok {
			if _, isSummary := e.Get(SummaryField); isSummary {
				n, _ := c.AsInt()
				total += n
				continue
			}
		}
		total++
	}
	return total
}

func TestRoundTripElementAccounting(t *testing.T) {
	for _, n := range []int{1, 2, 4, 9, 30} {
		t.Run(fmt.Sprintf("len%d", n), func(t *testing.T) {
			elems := make([]*Value, n)
			for i := range elems {
				if i%5 == 4 {
					elems[i] = obj("odd", Bool(true))
				} else {
					elems[i] = obj("a", Int(int64(i)))
				}
			}
			res := mustDistill(t, List(elems...), DefaultOptions())
			if got := representedElements(res.Value); got != int64(n) {
				t.Errorf("distilled list represents %d elements, want %d: %s",
					got, n, compactJSON(t, res.Value))
			}
		})
	}
}

func TestNodeAccounting(t *testing.T) {
	elems := make([]*Value, 50)
	for i := range elems {
		elems[i] = obj("a", Int(int64(i)), "b", Text("x"))
	}
	res := mustDistill(t, obj("items", List(elems...)), DefaultOptions())

	if res.InputNodes != CountNodes(obj("items", List(elems...))) {
		t.Errorf("InputNodes mismatch")
	}
	if res.OutputNodes >= res.InputNodes {
		t.Errorf("distillation did not shrink: in=%d out=%d", res.InputNodes, res.OutputNodes)
	}
	if r := res.Reduction(); r <= 0 || r >= 1 {
		t.Errorf("reduction %v out of expected range", r)
	}
}
