// Package share turns an invoice snapshot into a URL query value and back.
//
// Encoding is: shorten keys (package keymap), write canonical JSON,
// compress with lz-string into a URL-safe string. Decoding reverses each
// step. A payload that fails any decoding step is reported as absent,
// never as an error, so a damaged link falls back to local state.
package share

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/angelofallars/sharebill/internal/invoice"
	"github.com/angelofallars/sharebill/internal/keymap"
	"github.com/angelofallars/sharebill/pkg/lzstring"
)

// ParamName is the query parameter that carries the payload.
const ParamName = "data"

// Encode compresses any JSON-encodable value into a payload string.
func Encode(v any) (string, error) {
	tree, err := toTree(v)
	if err != nil {
		return "", err
	}

	canonical, err := marshalCanonical(keymap.Compress(tree))
	if err != nil {
		return "", err
	}

	return lzstring.CompressToEncodedURIComponent(canonical)
}

// Decode reverses Encode, returning the restored JSON tree. Numbers are
// json.Number so that no precision is lost. ok is false when the payload
// does not decompress, is empty, or is not JSON.
func Decode(payload string) (tree any, ok bool) {
	text, err := lzstring.DecompressFromEncodedURIComponent(payload)
	if err != nil || text == "" {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}

	return keymap.Restore(tree), true
}

// GenerateURL returns pageURL with its data parameter set to the encoded
// invoice. The path, the fragment and every other parameter are kept as
// they are.
func GenerateURL(pageURL string, data *invoice.Data) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("Parsing page URL failed: %w", err)
	}

	payload, err := Encode(data)
	if err != nil {
		return "", err
	}

	u.RawQuery = setParam(u.RawQuery, ParamName, payload)
	return u.String(), nil
}

// LoadFromURL extracts the invoice carried by pageURL. ok is false when
// there is no data parameter or it cannot be decoded into an invoice.
// Derived amounts are taken as they are, never recalculated.
func LoadFromURL(pageURL string) (data *invoice.Data, ok bool) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, false
	}

	payload := u.Query().Get(ParamName)
	if payload == "" {
		return nil, false
	}

	return LoadPayload(payload)
}

// LoadPayload decodes a bare data parameter value into an invoice.
func LoadPayload(payload string) (data *invoice.Data, ok bool) {
	tree, ok := Decode(payload)
	if !ok {
		return nil, false
	}
	if _, isObject := tree.(map[string]any); !isObject {
		return nil, false
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, false
	}

	data = &invoice.Data{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, false
	}
	return data, true
}

// toTree converts v into the generic form keymap works on.
func toTree(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("Encoding share payload failed: %w", err)
	}

	var tree any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("Encoding share payload failed: %w", err)
	}
	return tree, nil
}

// marshalCanonical writes compact JSON with sorted object keys and
// without HTML escaping.
func marshalCanonical(tree any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		return "", fmt.Errorf("Encoding share payload failed: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// setParam replaces or appends one parameter in a raw query, leaving the
// other parameters in their original order and escaping. The value must
// already be URL safe.
func setParam(rawQuery, name, value string) string {
	pair := name + "=" + value
	if rawQuery == "" {
		return pair
	}

	parts := strings.Split(rawQuery, "&")
	out := make([]string, 0, len(parts)+1)
	replaced := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		key, _, _ := strings.Cut(part, "=")
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if key != name {
			out = append(out, part)
			continue
		}
		if !replaced {
			out = append(out, pair)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, pair)
	}

	return strings.Join(out, "&")
}
