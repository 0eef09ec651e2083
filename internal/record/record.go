package record

import "github.com/hlview/hl/internal/tstamp"

// Kind of the outermost record representation, a closed three-way variant
// per SPEC_FULL §9 ("prefer a closed tagged variant... exhaustive, never
// extended at runtime").
type RecordKind uint8

const (
	RecordJSON RecordKind = iota
	RecordLogfmt
	RecordRaw
)

// SemanticField names one of the five well-known fields resolved from
// configurable candidate lists (SPEC_FULL §4.3).
type SemanticField uint8

const (
	FieldTime SemanticField = iota
	FieldLevel
	FieldMessage
	FieldCaller
	FieldLogger
	numSemanticFields
)

// Slot holds one resolved semantic field: its value, the top-level key it
// was resolved from (its "path of origin", needed by hide rules and raw
// emission per §4.3), and whether it resolved at all.
type Slot struct {
	Value   Value
	Origin  string
	Present bool
}

// Semantic holds the five semantic field slots populated during parsing.
type Semantic struct {
	slots [numSemanticFields]Slot
}

// Get returns the slot for f.
func (s *Semantic) Get(f SemanticField) Slot { return s.slots[f] }

func (s *Semantic) set(f SemanticField, v Value, origin string) {
	s.slots[f] = Slot{Value: v, Origin: origin, Present: true}
}

// InputBadge identifies the source a record came from, for concatenation
// and sort/follow badges (SPEC_FULL §3 "input badge").
type InputBadge struct {
	Name       string
	SourceIndex int
}

// Record is one segmented, parsed message, owned by whoever produced it
// and moved by value or pointer through the pipeline without shared
// mutable state (SPEC_FULL §3 "Lifecycle").
type Record struct {
	Segment  []byte
	Kind     RecordKind
	Fields   Value // KindObject for JSON/Logfmt, KindNull for Raw
	Semantic Semantic
	Badge    InputBadge
	Instant  *tstamp.Instant // nil if no resolvable timestamp
	Level    Level
	HasLevel bool
}

// resolveLevel sets Level and HasLevel from the record's semantic level
// slot, if it resolved to a recognized value.
func (r *Record) resolveLevel() {
	slot := r.Semantic.Get(FieldLevel)
	if !slot.Present {
		return
	}

	if lvl, ok := ParseLevel(slot.Value); ok {
		r.Level = lvl
		r.HasLevel = true
	}
}

// CandidateConfig lists, per semantic field, the field names tried in
// order when populating a [Record] (SPEC_FULL §4.3). Defaults mirror
// common structured-logging conventions.
type CandidateConfig struct {
	Time    []string
	Level   []string
	Message []string
	Caller  []string
	Logger  []string
}

// DefaultCandidateConfig returns hl's built-in candidate lists.
func DefaultCandidateConfig() CandidateConfig {
	return CandidateConfig{
		Time:    []string{"time", "timestamp", "@timestamp", "ts", "t"},
		Level:   []string{"level", "lvl", "severity", "loglevel"},
		Message: []string{"message", "msg", "m"},
		Caller:  []string{"caller", "file", "source"},
		Logger:  []string{"logger", "component", "log.logger"},
	}
}

func (c CandidateConfig) forField(f SemanticField) []string {
	switch f {
	case FieldTime:
		return c.Time
	case FieldLevel:
		return c.Level
	case FieldMessage:
		return c.Message
	case FieldCaller:
		return c.Caller
	case FieldLogger:
		return c.Logger
	default:
		return nil
	}
}

// resolveSemantics populates r.Semantic from r.Fields using the top-level
// candidate lists in cfg. Candidates are plain field names (not dotted
// paths): semantic-field resolution is a simple top-level lookup per
// SPEC_FULL §4.3's examples, distinct from the full hierarchical/flat
// path algorithm package fieldpath implements for filters and queries.
func (r *Record) resolveSemantics(cfg CandidateConfig, tsParser *tstamp.Parser) {
	if r.Fields.Kind() != KindObject {
		return
	}

	for f := SemanticField(0); f < numSemanticFields; f++ {
		for _, name := range cfg.forField(f) {
			if v, ok := r.Fields.Field(name); ok {
				r.Semantic.set(f, v, name)

				break
			}
		}
	}

	r.resolveLevel()

	if tsParser == nil {
		return
	}

	slot := r.Semantic.Get(FieldTime)
	if !slot.Present {
		return
	}

	s, ok := slot.Value.AsString()
	if !ok {
		return
	}

	if inst, ok := tsParser.Parse(s); ok {
		r.Instant = &inst
	}
}
