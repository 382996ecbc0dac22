package transform

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var indentOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

var sortedOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: true}

// FormatJSON pretty-prints a JSON document with two-space indentation.
func FormatJSON(s string) (string, error) {
	doc, err := validJSON("json.format", s)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(pretty.PrettyOptions(doc, indentOptions)), "\n"), nil
}

// MinifyJSON removes all insignificant white space from a JSON document.
func MinifyJSON(s string) (string, error) {
	doc, err := validJSON("json.minify", s)
	if err != nil {
		return "", err
	}
	return string(pretty.Ugly(doc)), nil
}

// SortJSONKeys pretty-prints a JSON document with object keys in
// lexicographic order.
func SortJSONKeys(s string) (string, error) {
	doc, err := validJSON("json.sort", s)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(pretty.PrettyOptions(doc, sortedOptions)), "\n"), nil
}

func validJSON(op, s string) ([]byte, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || !gjson.Valid(trimmed) {
		return nil, &DecodeError{Op: op, Offset: -1, Err: ErrInvalidJSON}
	}
	return []byte(trimmed), nil
}
