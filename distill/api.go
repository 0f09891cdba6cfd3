// Package distill rewrites large, repetitive JSON documents into
// structurally equivalent but drastically smaller ones: runs of list
// siblings that share the same deep structure collapse into a single
// representative plus a count summary. Concrete values are kept only for
// representatives; everything else is described by structure fingerprints.
package distill

import "fmt"

// Distill rewrites a value tree into its distilled form under the given
// policy. The input tree is never mutated. Each call is independent and may
// run concurrently with other calls on other documents.
//
// Example:
//
//	val, _ := distill.DecodeJSON(data)
//	res, err := distill.Distill(val, distill.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := distill.EncodeJSON(res.Value, "  ")
func Distill(v *Value, opts Options) (*Result, error) {
	if v == nil {
		return nil, fmt.Errorf("input value cannot be nil")
	}
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	d := newDistiller(opts)
	distilled := d.walk(v, "$", 0)

	return &Result{
		Value:       distilled,
		InputNodes:  CountNodes(v),
		OutputNodes: CountNodes(distilled),
	}, nil
}

// DistillDocument distills v and wraps the result in the conventional
// document envelope: a description of the active policy plus the distilled
// tree under "distilled_data".
func DistillDocument(v *Value, opts Options) (*Value, *Result, error) {
	res, err := Distill(v, opts)
	if err != nil {
		return nil, nil, err
	}
	env := Map(
		Field{Name: "description", Value: Text(describePolicy(opts))},
		Field{Name: "distilled_data", Value: res.Value},
	)
	return env, res, nil
}

// describePolicy renders the fixed explanatory text carried in the
// envelope. It depends only on the policy, keeping output deterministic.
func describePolicy(opts Options) string {
	return fmt.Sprintf(
		"Distilled JSON structure. Shows the first encountered example for each unique deep structure within lists. "+
			"Runs of structurally identical siblings of length >= %d collapse into one representative plus a "+
			"summary object carrying 'item_count' and a 'summarized_pattern' tag like abcd1234(x5). "+
			"Representatives that are objects carry the synthetic '%s' field with the same tag. "+
			"position_dependent=%t (true: examples tracked per nesting depth; false: one example per structure globally). "+
			"strict_typing=%t (true: int and float fields are distinct structures).",
		opts.RepeatThreshold, StructureHashField, opts.PositionDependent, opts.StrictTyping,
	)
}
