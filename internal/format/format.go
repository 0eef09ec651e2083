package format

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/hlview/hl/internal/record"
	"github.com/hlview/hl/internal/theme"
	"github.com/hlview/hl/internal/tstamp"
)

// Formatter renders [record.Record] values as ANSI-styled text per
// SPEC_FULL §4.9 (C9). It is stateless and safe for concurrent use; all
// per-record context (the [theme.StylePack] for that record's level, and
// its sync indicator) is passed to [Formatter.Format].
type Formatter struct {
	Config
}

// New constructs a Formatter from cfg.
func New(cfg Config) *Formatter {
	return &Formatter{Config: cfg}
}

// levelBadge is the fixed three-letter uppercase label shown for each
// level.
func levelBadge(l record.Level) string {
	switch l {
	case record.LevelTrace:
		return "TRC"
	case record.LevelDebug:
		return "DBG"
	case record.LevelInfo:
		return "INF"
	case record.LevelWarn:
		return "WRN"
	case record.LevelError:
		return "ERR"
	default:
		return "???"
	}
}

// Format renders rec as zero or more terminated lines of styled text,
// using pack for this record's level and badge to mark its sync state in
// follow/sort mode.
func (f *Formatter) Format(rec *record.Record, pack theme.StylePack, badge IndicatorState) string {
	if f.Raw {
		return f.formatRaw(rec, pack, badge)
	}

	if f.RawFields && rec.Kind != record.RecordRaw {
		return f.formatRawFields(rec, pack, badge)
	}

	if rec.Kind == record.RecordRaw {
		return f.formatRaw(rec, pack, badge)
	}

	var head strings.Builder

	f.writeIndicator(&head, pack, badge)
	f.writeBadgeAndLevel(&head, rec, pack)
	f.writeTime(&head, rec, pack)
	f.writeCallerLogger(&head, rec, pack)

	entries := f.visibleEntries(rec)

	msg, hasMsg := f.messageText(rec)

	expand := f.shouldExpand(msg, entries)
	if expand {
		return f.formatExpanded(head.String(), msg, hasMsg, entries, pack)
	}

	return f.formatCompact(head.String(), msg, hasMsg, entries, pack)
}

// formatRaw passes an unparseable record's original bytes through mostly
// unformatted, escaping per the expansion policy (SPEC_FULL §4.3 "raw
// records ... pass through unformatted").
func (f *Formatter) formatRaw(rec *record.Record, pack theme.StylePack, badge IndicatorState) string {
	var head strings.Builder

	f.writeIndicator(&head, pack, badge)

	return head.String() + f.escapeInline(ansi.Strip(string(rec.Segment)))
}

// formatRawFields renders the level badge, time, caller and logger as
// usual, followed by the record's original segment bytes (ANSI stripped,
// escaped per the expansion policy) in place of the parsed/inferred
// field rendering (SPEC_FULL §6 --raw-fields).
func (f *Formatter) formatRawFields(rec *record.Record, pack theme.StylePack, badge IndicatorState) string {
	var head strings.Builder

	f.writeIndicator(&head, pack, badge)
	f.writeBadgeAndLevel(&head, rec, pack)
	f.writeTime(&head, rec, pack)
	f.writeCallerLogger(&head, rec, pack)

	return head.String() + f.escapeInline(ansi.Strip(string(rec.Segment)))
}

func (f *Formatter) writeIndicator(sb *strings.Builder, pack theme.StylePack, badge IndicatorState) {
	switch badge {
	case IndicatorSync:
		sb.WriteString(paint(pack.Style(theme.ElementIndicatorSync), "│"))
		sb.WriteByte(' ')
	case IndicatorAsync:
		sb.WriteString(paint(pack.Style(theme.ElementIndicatorAsync), "┊"))
		sb.WriteByte(' ')
	}
}

func (f *Formatter) writeBadgeAndLevel(sb *strings.Builder, rec *record.Record, pack theme.StylePack) {
	if !rec.HasLevel {
		return
	}

	sb.WriteString(paint(pack.Inner(theme.ElementLevel), levelBadge(rec.Level)))
	sb.WriteByte(' ')
}

func (f *Formatter) writeTime(sb *strings.Builder, rec *record.Record, pack theme.StylePack) {
	if rec.Instant == nil {
		return
	}

	text, err := tstamp.Format(*rec.Instant, f.Location, f.TimeTemplate)
	if err != nil {
		return
	}

	sb.WriteString(paint(pack.Style(theme.ElementTime), text))
	sb.WriteByte(' ')
}

func (f *Formatter) writeCallerLogger(sb *strings.Builder, rec *record.Record, pack theme.StylePack) {
	if slot := rec.Semantic.Get(record.FieldLogger); slot.Present && !f.hiddenOrigin(slot.Origin) {
		if s, ok := slot.Value.AsString(); ok && s != "" {
			sb.WriteString(paint(pack.Inner(theme.ElementLogger), s))
			sb.WriteByte(' ')
		}
	}

	if slot := rec.Semantic.Get(record.FieldCaller); slot.Present && !f.hiddenOrigin(slot.Origin) {
		if s, ok := slot.Value.AsString(); ok && s != "" {
			sb.WriteString(paint(pack.Inner(theme.ElementCaller), s))
			sb.WriteByte(' ')
		}
	}
}

func (f *Formatter) hiddenOrigin(origin string) bool {
	return f.Visibility.Hidden(origin)
}

func (f *Formatter) messageText(rec *record.Record) (string, bool) {
	slot := rec.Semantic.Get(record.FieldMessage)
	if !slot.Present {
		return "", false
	}

	s, ok := slot.Value.AsString()

	return s, ok
}

// fieldEntry is one non-semantic field resolved for display, already
// flattened if f.Flatten is [FlattenAlways].
type fieldEntry struct {
	Key   string
	Value record.Value
}

// visibleEntries returns rec's non-semantic fields, flattened per
// f.Flatten, with hidden-empty and hide-rule filtering applied
// (SPEC_FULL §4.9).
func (f *Formatter) visibleEntries(rec *record.Record) []fieldEntry {
	if rec.Fields.Kind() != record.KindObject {
		return nil
	}

	skip := semanticOrigins(rec)

	var out []fieldEntry

	for _, m := range rec.Fields.Members() {
		if skip[m.Key] {
			continue
		}

		f.collectEntries(m.Key, m.Value, &out)
	}

	return out
}

func semanticOrigins(rec *record.Record) map[string]bool {
	skip := map[string]bool{}

	for _, field := range []record.SemanticField{
		record.FieldTime, record.FieldLevel, record.FieldMessage,
		record.FieldCaller, record.FieldLogger,
	} {
		if slot := rec.Semantic.Get(field); slot.Present {
			skip[slot.Origin] = true
		}
	}

	return skip
}

func (f *Formatter) collectEntries(key string, v record.Value, out *[]fieldEntry) {
	if f.HideEmptyFields && isEmptyValue(v) {
		return
	}

	if f.Visibility.Hidden(key) {
		return
	}

	if f.Flatten == FlattenAlways && v.Kind() == record.KindObject {
		for _, m := range v.Members() {
			f.collectEntries(key+"."+m.Key, m.Value, out)
		}

		return
	}

	*out = append(*out, fieldEntry{Key: key, Value: v})
}

// shouldExpand decides whether this record uses the expanded (one field
// per line) layout (SPEC_FULL §4.9).
func (f *Formatter) shouldExpand(msg string, entries []fieldEntry) bool {
	switch f.Expansion {
	case ExpansionAlways:
		return true
	case ExpansionAuto:
		if hasMultiline(msg) {
			return true
		}

		for _, e := range entries {
			if s, ok := e.Value.AsString(); ok && hasMultiline(s) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

func (f *Formatter) formatCompact(head, msg string, hasMsg bool, entries []fieldEntry, pack theme.StylePack) string {
	var sb strings.Builder

	sb.WriteString(head)

	if hasMsg {
		sb.WriteString(paint(pack.Style(theme.ElementMessage), f.escapeInline(msg)))
	}

	for _, e := range entries {
		sb.WriteByte(' ')
		sb.WriteString(paint(pack.Style(theme.ElementFieldKey), e.Key))
		sb.WriteString(paint(pack.Style(theme.ElementPunctuation), "="))
		sb.WriteString(f.renderValue(pack, e.Value))
	}

	return sb.String()
}

func (f *Formatter) formatExpanded(head, msg string, hasMsg bool, entries []fieldEntry, pack theme.StylePack) string {
	conn := f.connectors()

	var sb strings.Builder

	sb.WriteString(head)

	if hasMsg {
		sb.WriteString(paint(pack.Style(theme.ElementMessage), indentContinuation(conn.bar, msg)))
	}

	for i, e := range entries {
		sb.WriteByte('\n')

		c := conn.branch
		if i == len(entries)-1 {
			c = conn.last
		}

		sb.WriteString(c)
		sb.WriteString(paint(pack.Style(theme.ElementFieldKey), e.Key))
		sb.WriteString(paint(pack.Style(theme.ElementPunctuation), "="))
		sb.WriteString(indentField(c, e.Key, f.renderValue(pack, e.Value)))
	}

	return sb.String()
}

// InputBadgeText renders an [record.InputBadge] for concatenated-source
// display, honoring f.ShowInputBadge.
func (f *Formatter) InputBadgeText(pack theme.StylePack, badge record.InputBadge) string {
	if !f.ShowInputBadge {
		return ""
	}

	num := paint(pack.Inner(theme.ElementInputNumber), strconv.Itoa(badge.SourceIndex+1))
	name := paint(pack.Inner(theme.ElementInputName), badge.Name)

	return num + " " + name + " "
}
