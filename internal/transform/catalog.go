package transform

// Op is a named transformation offered in the action palette.
type Op struct {
	ID      string       // stable identifier, also used as a keybinding action
	Label   string       // menu text
	Success string       // notification shown after a successful apply
	Failure string       // notification shown when Apply rejects the input
	Apply   FallibleFunc // total ops are wrapped with Must

	// Announce marks ops whose success is shown as a toast rather than
	// only in the status line.
	Announce bool
}

// Fallible reports whether the op can reject its input.
func (o Op) Fallible() bool { return o.Failure != "" }

var catalog = []Op{
	{ID: "case.upper", Label: "UPPERCASE", Success: "Converted to uppercase", Apply: Must(Upper)},
	{ID: "case.lower", Label: "lowercase", Success: "Converted to lowercase", Apply: Must(Lower)},
	{ID: "case.title", Label: "Title Case", Success: "Converted to title case", Apply: Must(Title)},
	{ID: "case.sentence", Label: "Sentence case", Success: "Converted to sentence case", Apply: Must(Sentence)},
	{ID: "space.collapse", Label: "Remove extra spaces", Success: "Extra spaces removed", Apply: Must(CollapseWhitespace)},
	{ID: "text.reverse", Label: "Reverse text", Success: "Text reversed", Apply: Must(Reverse)},
	{ID: "base64.encode", Label: "Base64 encode", Success: "Encoded to Base64", Apply: Must(EncodeBase64), Announce: true},
	{ID: "base64.decode", Label: "Base64 decode", Success: "Decoded from Base64", Failure: "Invalid Base64", Apply: DecodeBase64, Announce: true},
	{ID: "url.encode", Label: "URL encode", Success: "URL encoded", Apply: Must(EncodeURL), Announce: true},
	{ID: "url.decode", Label: "URL decode", Success: "URL decoded", Failure: "Invalid URL encoding", Apply: DecodeURL, Announce: true},
	{ID: "json.format", Label: "Format JSON", Success: "JSON formatted", Failure: "Invalid JSON", Apply: FormatJSON, Announce: true},
	{ID: "json.minify", Label: "Minify JSON", Success: "JSON minified", Failure: "Invalid JSON", Apply: MinifyJSON, Announce: true},
	{ID: "json.sort", Label: "Sort JSON keys", Success: "JSON keys sorted", Failure: "Invalid JSON", Apply: SortJSONKeys, Announce: true},
}

// Catalog returns the palette entries in display order.
func Catalog() []Op {
	return append([]Op(nil), catalog...)
}

// Lookup finds a catalog entry by id.
func Lookup(id string) (Op, bool) {
	for _, op := range catalog {
		if op.ID == id {
			return op, true
		}
	}
	return Op{}, false
}
