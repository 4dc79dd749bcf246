package form

// FieldKind decides how a field renders and serializes. The record has no
// schema, so the kind is derived from the field name alone.
type FieldKind int

const (
	KindText FieldKind = iota
	KindIdentifier
	KindDate
	KindTagList
	KindEnum
)

// FormatOptions is the closed choice set for the format field. The leading
// empty entry is the explicit "no format" choice.
var FormatOptions = []string{"", "Card", "Vinilo", "CD", "Cassette"}

// CollectionOptions is the closed choice set for the membership selector.
var CollectionOptions = []string{"", "albums", "pendientes"}

// Note: the tag-like set holds "genre" (singular) while the default field
// list carries "genres"; the catalog grew that way and both spellings are
// live in stored records, so "genres" stays free text.
var tagListFields = map[string]bool{
	"genre":        true,
	"subgenres":    true,
	"mood":         true,
	"compilations": true,
}

var dateFields = map[string]bool{
	"year":         true,
	"release_date": true,
}

// Classify maps a field name onto its rendering kind.
func Classify(name string) FieldKind {
	switch {
	case name == "spotify_id":
		return KindIdentifier
	case dateFields[name]:
		return KindDate
	case tagListFields[name]:
		return KindTagList
	case name == "format":
		return KindEnum
	default:
		return KindText
	}
}

// EnumOptions returns the option set for enum-kind fields.
func EnumOptions(name string) []string {
	if name == "format" {
		return FormatOptions
	}
	return nil
}
