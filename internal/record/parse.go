package record

import "github.com/hlview/hl/internal/tstamp"

// Config bundles the configuration Parse needs: format detection, semantic
// field candidates, and the timestamp parser chain.
type Config struct {
	Detect     DetectConfig
	Candidates CandidateConfig
	Timestamps *tstamp.Parser
}

// DefaultConfig returns hl's built-in parsing configuration.
func DefaultConfig() Config {
	return Config{
		Candidates: DefaultCandidateConfig(),
		Timestamps: tstamp.NewParser(),
	}
}

// Parse detects seg's format, decodes it, and resolves semantic fields,
// producing a [Record]. A non-nil returned error is purely diagnostic
// (SPEC_FULL §7 JsonSyntax/LogfmtSyntax, logged at debug by the caller):
// the record itself always comes back usable, demoted to [RecordRaw] on a
// decode failure so downstream policy (§4.3) can keep, discard, or pass
// it through.
func Parse(seg []byte, cfg Config, badge InputBadge) (*Record, error) {
	kind, jsonStart := Detect(seg, cfg.Detect)

	r := &Record{Segment: seg, Kind: kind, Badge: badge}

	switch kind {
	case RecordJSON:
		v, err := ParseJSON(seg[jsonStart:])
		if err != nil {
			r.Kind = RecordRaw

			return r, err
		}

		r.Fields = v
		r.resolveSemantics(cfg.Candidates, cfg.Timestamps)
	case RecordLogfmt:
		v, err := ParseLogfmt(seg)
		if err != nil {
			r.Kind = RecordRaw

			return r, err
		}

		r.Fields = v
		r.resolveSemantics(cfg.Candidates, cfg.Timestamps)
	case RecordRaw:
		// No fields to populate.
	}

	return r, nil
}
