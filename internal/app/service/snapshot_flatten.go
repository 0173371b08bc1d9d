package service

import (
	stdjson "encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	domain "momentum/internal/domain/entity"
	"momentum/internal/entity"

	jsoniter "github.com/json-iterator/go"
)

// payloadJSON keeps numbers as json.Number so integer fields survive flattening exactly.
var payloadJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// stringJSON quotes string scalars; encodeLabels adds the non-ASCII escaping on top.
var stringJSON = jsoniter.Config{EscapeHTML: false}.Froze()

const keySeparator = "_"

// FlattenPairs converts the pairs array of a price API payload into one row per pair.
// Nested objects become underscore-joined columns, url is dropped, labels are
// serialized to JSON text and priceUsd/priceNative are coerced to float64.
func FlattenPairs(payload []byte) ([]domain.SnapshotRow, error) {
	var resp entity.RawPairsResponse
	if err := payloadJSON.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode pairs payload: %w", err)
	}

	rows := make([]domain.SnapshotRow, 0, len(resp.Pairs))
	for i, pair := range resp.Pairs {
		row := domain.SnapshotRow{}
		flattenInto(row, "", pair)

		delete(row, domain.ColumnURL)

		if labels, ok := pair[domain.ColumnLabels]; ok {
			row[domain.ColumnLabels] = nil
			if labels != nil {
				text, err := encodeLabels(labels)
				if err != nil {
					return nil, fmt.Errorf("pair %d: failed to serialize labels: %w", i, err)
				}
				row[domain.ColumnLabels] = text
			}
		}

		for _, col := range []string{domain.ColumnPriceUsd, domain.ColumnPriceNative} {
			v, ok := row[col]
			if !ok {
				continue
			}
			f, err := toFloat(v)
			if err != nil {
				return nil, fmt.Errorf("pair %d: column %s: %w", i, col, err)
			}
			row[col] = f
		}

		if row.Name() == "" {
			return nil, fmt.Errorf("pair %d: %w", i, domain.ErrMissingName)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func flattenInto(row domain.SnapshotRow, prefix string, obj map[string]any) {
	for k, v := range obj {
		key := k
		if prefix != "" {
			key = prefix + keySeparator + k
		} else if k == domain.ColumnLabels {
			// kept whole, serialized by FlattenPairs
			continue
		}
		switch t := v.(type) {
		case map[string]any:
			flattenInto(row, key, t)
		case stdjson.Number:
			row[key] = numberValue(string(t))
		case jsoniter.Number:
			row[key] = numberValue(string(t))
		case []any:
			row[key] = normalizeArray(t)
		default:
			row[key] = v
		}
	}
}

func normalizeArray(arr []any) []any {
	out := make([]any, len(arr))
	for i, v := range arr {
		switch t := v.(type) {
		case stdjson.Number:
			out[i] = numberValue(string(t))
		case jsoniter.Number:
			out[i] = numberValue(string(t))
		case []any:
			out[i] = normalizeArray(t)
		case map[string]any:
			m := make(map[string]any, len(t))
			for k, mv := range t {
				m[k] = normalizeArray([]any{mv})[0]
			}
			out[i] = m
		default:
			out[i] = v
		}
	}
	return out
}

// numberValue returns an int64 for integral numbers and a float64 otherwise.
func numberValue(n string) any {
	if i, err := strconv.ParseInt(n, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(n, 64); err == nil {
		return f
	}
	return n
}

// toFloat coerces a price column. Null stays null.
func toFloat(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to float: %w", t, err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to float", v)
	}
}

// encodeLabels renders v as JSON text with ", " and ": " separators and \uXXXX escapes for
// non-ASCII, matching rows written to the table before this job existed. Object keys are sorted.
func encodeLabels(v any) (string, error) {
	var b strings.Builder
	if err := writeLabelValue(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeLabelValue(b *strings.Builder, v any) error {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case string:
		return writeLabelString(b, t)
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case float64:
		s := strconv.FormatFloat(t, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		b.WriteString(s)
	case stdjson.Number:
		return writeLabelValue(b, numberValue(string(t)))
	case jsoniter.Number:
		return writeLabelValue(b, numberValue(string(t)))
	case []any:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeLabelValue(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeLabelString(b, k); err != nil {
				return err
			}
			b.WriteString(": ")
			if err := writeLabelValue(b, t[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("unsupported label value %T", v)
	}
	return nil
}

func writeLabelString(b *strings.Builder, s string) error {
	quoted, err := stringJSON.MarshalToString(s)
	if err != nil {
		return err
	}
	for _, r := range quoted {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		for _, u := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(b, "\\u%04x", u)
		}
	}
	return nil
}
