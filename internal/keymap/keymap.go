// Package keymap shortens the field names of an invoice JSON tree to one
// or two character tokens and restores them again.
//
// The token table is a public, versioned interface: every share link ever
// produced depends on it. It is append-only, and both lookup directions
// are derived from it once at startup.
package keymap

import (
	"encoding/json"
	"fmt"
)

var (
	forward map[string]string
	reverse map[string]string
)

func init() {
	var err error
	forward, reverse, err = build(table)
	if err != nil {
		panic("keymap: " + err.Error())
	}
}

// build inverts entries, failing if a field or a token appears twice.
func build(entries []Entry) (map[string]string, map[string]string, error) {
	fwd := make(map[string]string, len(entries))
	rev := make(map[string]string, len(entries))

	for _, e := range entries {
		if e.Field == "" || e.Token == "" {
			return nil, nil, fmt.Errorf("empty field or token in entry %+v", e)
		}
		if token, ok := fwd[e.Field]; ok {
			return nil, nil, fmt.Errorf("field %q mapped twice (%q and %q)", e.Field, token, e.Token)
		}
		if field, ok := rev[e.Token]; ok {
			return nil, nil, fmt.Errorf("token %q assigned to both %q and %q", e.Token, field, e.Field)
		}
		fwd[e.Field] = e.Token
		rev[e.Token] = e.Field
	}

	return fwd, rev, nil
}

// Compress returns a copy of v with every known object key replaced by
// its token. v is a JSON tree as produced by encoding/json decoding into
// an any: map[string]any, []any and scalars. Unknown keys are kept as they
// are, so fields added by newer clients survive. Values are never
// inspected.
func Compress(v any) any { return remap(v, forward) }

// Restore is the inverse of Compress.
func Restore(v any) any { return remap(v, reverse) }

func remap(v any, keys map[string]string) any {
	switch v := v.(type) {
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = remap(elem, keys)
		}
		return out

	case map[string]any:
		if v == nil {
			return v
		}
		out := make(map[string]any, len(v))
		for key, elem := range v {
			if mapped, ok := keys[key]; ok {
				key = mapped
			}
			out[key] = remap(elem, keys)
		}
		return out

	default:
		return v
	}
}

// Token returns the token for a field name.
func Token(field string) (string, bool) {
	token, ok := forward[field]
	return token, ok
}

// Field returns the field name for a token.
func Field(token string) (string, bool) {
	field, ok := reverse[token]
	return field, ok
}

// Len is the number of entries in the table.
func Len() int { return len(table) }

// Entries returns a copy of the table in assignment order.
func Entries() []Entry {
	return append([]Entry(nil), table...)
}

// Artifact is the publishable form of the table, for tools that build or
// read share links without linking this package.
type Artifact struct {
	// Revision grows by one for every appended entry.
	Revision int `json:"revision"`

	// Keys maps field names to tokens.
	Keys map[string]string `json:"keys"`
}

func NewArtifact() Artifact {
	keys := make(map[string]string, len(forward))
	for field, token := range forward {
		keys[field] = token
	}
	return Artifact{Revision: len(table), Keys: keys}
}

// MarshalArtifact renders the artifact as indented JSON with sorted keys.
func MarshalArtifact() ([]byte, error) {
	return json.MarshalIndent(NewArtifact(), "", "  ")
}
