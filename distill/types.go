package distill

import "fmt"

// Synthetic field and summary names rendered into distilled output. They are
// ordinary JSON fields in the result, so the output stays consumable by any
// standard JSON reader.
const (
	StructureHashField = "_structure_hash"
	ItemCountField     = "item_count"
	SummaryField       = "summarized_pattern"
)

// Options configures one distillation invocation. The engine treats it as an
// immutable policy for the duration of the call.
type Options struct {
	// StrictTyping distinguishes int-valued from float-valued fields when
	// comparing structures. When false both collapse to one number tag.
	StrictTyping bool

	// PositionDependent scopes "already shown" tracking per nesting depth.
	// When false a structure is shown once globally, at its first
	// occurrence in document order.
	PositionDependent bool

	// RepeatThreshold is the minimum run length required before a run is
	// summarized instead of shown in full. Must be >= 1.
	RepeatThreshold int

	// Logger receives debug traces of grouping decisions. Nil disables
	// logging.
	Logger Logger
}

// DefaultOptions returns the documented default policy: strict typing,
// per-depth example scoping, and a repeat threshold of 2.
func DefaultOptions() Options {
	return Options{
		StrictTyping:      true,
		PositionDependent: true,
		RepeatThreshold:   2,
	}
}

func (o Options) validate() error {
	if o.RepeatThreshold < 1 {
		return fmt.Errorf("repeat threshold must be >= 1, got %d", o.RepeatThreshold)
	}
	return nil
}

// Result holds the distilled tree plus size accounting.
type Result struct {
	Value       *Value // distilled tree, without the document envelope
	InputNodes  int
	OutputNodes int
}

// Reduction returns the fraction of input nodes removed by distillation,
// in [0, 1].
func (r *Result) Reduction() float64 {
	if r.InputNodes == 0 {
		return 0
	}
	return 1 - float64(r.OutputNodes)/float64(r.InputNodes)
}
