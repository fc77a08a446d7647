package preset

import (
	"path"
	"strings"
)

// ExtToken is the Flame placeholder for the file extension. Extensions
// are not known until Flame actually exports specific file types, so
// the template's literal suffix is replaced with this token.
const ExtToken = "<ext>"

// substitution is one entry of the dialect translation table
type substitution struct {
	from string
	to   string
}

// substitutions returns the ordered token table converting the
// pipeline's {field} dialect into Flame's <placeholder> dialect.
// parentEntityType is the configurable shot parent token, typically
// Sequence but possibly Scene or a custom entity type. The remaining
// entries are fixed by the Flame preset file format.
func substitutions(parentEntityType string) []substitution {
	return []substitution{
		{"{" + parentEntityType + "}", "<name>"},
		{"{Shot}", "<shot name>"},
		{"{segment_name}", "<segment name>"},
		{"{version}", "<version>"},
		{"{SEQ}", "<frame>"},
		{"{YYYY}", "<YYYY>"},
		{"{MM}", "<MM>"},
		{"{DD}", "<DD>"},
		{"{hh}", "<hh>"},
		{"{mm}", "<mm>"},
		{"{ss}", "<ss>"},
		{"{width}", "<width>"},
		{"{height}", "<height>"},
	}
}

// Translate converts a template definition from the pipeline's token
// dialect into Flame's placeholder dialect and replaces the extension
// suffix with the <ext> token:
//
//	pipeline: sequences/{Sequence}/{Shot}/editorial/plates/{segment_name}_{Shot}.v{version}.{SEQ}.dpx
//	Flame:    sequences/<name>/<shot name>/editorial/plates/<segment name>_<shot name>.v<version>.<frame><ext>
//
// Translate is a pure function of its inputs, and translating its own
// output again is a no-op: the emitted placeholders never collide with
// the input token spellings, and a definition already carrying <ext>
// keeps its suffix.
func Translate(definition, parentEntityType string) string {
	out := definition
	for _, s := range substitutions(parentEntityType) {
		out = strings.ReplaceAll(out, s.from, s.to)
	}

	if strings.HasSuffix(out, ExtToken) {
		return out
	}
	ext := path.Ext(out)
	return strings.TrimSuffix(out, ext) + ExtToken
}
