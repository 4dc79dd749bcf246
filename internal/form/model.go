package form

import (
	"sort"

	"github.com/discana/companion/internal/api"
)

// DefaultFields is the field set used when the catalog has no record yet.
var DefaultFields = []string{
	"title", "artist", "spotify_id", "year", "format",
	"genres", "subgenres", "mood", "compilations",
}

// Field is one editable entry of the overlay form.
type Field struct {
	Name      string
	Kind      FieldKind
	Value     string
	Tags      *TagSet
	Options   []string
	OptionIdx int
}

// Model holds the editable state between overlay open and submit. It copies
// everything out of the resolved record; the record itself is never mutated.
type Model struct {
	Fields []Field

	recordID string
	origin   api.Membership
}

// Build derives a form from a resolved record. A nil or empty record falls
// back to the default field set with the identifier pre-filled from ref.
// The membership hint seeds the collection selector when the record itself
// does not carry one.
func Build(record api.Record, hint api.Membership, ref string) *Model {
	m := &Model{
		recordID: record.ID(),
		origin:   hint,
	}
	if c := record.Collection(); c != api.MembershipUnset {
		m.origin = c
	}

	for _, name := range fieldOrder(record) {
		f := Field{Name: name, Kind: Classify(name)}
		switch f.Kind {
		case KindIdentifier:
			f.Value = record.String(name)
			if f.Value == "" {
				f.Value = ref
			}
		case KindTagList:
			f.Tags = NewTagSet(record.String(name))
		case KindEnum:
			f.Options = EnumOptions(name)
			f.OptionIdx = optionIndex(f.Options, record.String(name))
		default:
			f.Value = record.String(name)
		}
		m.Fields = append(m.Fields, f)
	}

	// The membership selector is always present, whatever the record shape.
	m.Fields = append(m.Fields, Field{
		Name:      api.KeyCollection,
		Kind:      KindEnum,
		Options:   CollectionOptions,
		OptionIdx: optionIndex(CollectionOptions, string(m.origin)),
	})
	return m
}

// Serialize flattens every field to the submission payload: tag lists join
// with the wire delimiter, scalars pass through verbatim.
func (m *Model) Serialize() api.Submission {
	payload := api.Submission{}
	for _, f := range m.Fields {
		switch f.Kind {
		case KindTagList:
			payload[f.Name] = f.Tags.Serialize()
		case KindEnum:
			payload[f.Name] = f.Options[f.OptionIdx]
		default:
			payload[f.Name] = f.Value
		}
	}
	return payload
}

// RecordID returns the catalog identity key, empty for unsaved albums.
func (m *Model) RecordID() string {
	return m.recordID
}

// Origin is the collection the album is currently recorded in.
func (m *Model) Origin() api.Membership {
	return m.origin
}

// Destination is the collection currently chosen in the selector.
func (m *Model) Destination() api.Membership {
	for _, f := range m.Fields {
		if f.Name == api.KeyCollection {
			return api.Membership(f.Options[f.OptionIdx])
		}
	}
	return api.MembershipUnset
}

// fieldOrder lists renderable field names deterministically: known default
// fields in their canonical order first, then any extra record fields
// sorted. Control keys never render.
func fieldOrder(record api.Record) []string {
	if len(record) == 0 {
		return DefaultFields
	}

	seen := map[string]bool{}
	var names []string
	for _, name := range DefaultFields {
		if _, ok := record[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}

	var extra []string
	for name := range record {
		if seen[name] || name == api.KeyID || name == api.KeyCollection {
			continue
		}
		extra = append(extra, name)
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func optionIndex(options []string, value string) int {
	for i, opt := range options {
		if opt == value {
			return i
		}
	}
	return 0
}
