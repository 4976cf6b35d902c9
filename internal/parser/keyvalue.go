package parser

import "strings"

// fieldSpec binds one key of a key-value section to a field of S in both
// directions.
type fieldSpec[S any] struct {
	key    string
	decode func(s *S, value string) error
	// encode returns false when the line should be left out.
	encode func(s *S) (string, bool)
}

// fieldTable is an ordered set of fieldSpecs with case-insensitive lookup.
// The order is the order the serializer writes keys in.
type fieldTable[S any] struct {
	fields []fieldSpec[S]
	byKey  map[string]int
}

func newFieldTable[S any](fields ...fieldSpec[S]) *fieldTable[S] {
	t := &fieldTable[S]{fields: fields, byKey: make(map[string]int, len(fields))}
	for i, f := range fields {
		t.byKey[strings.ToLower(f.key)] = i
	}
	return t
}

func (t *fieldTable[S]) lookup(key string) (fieldSpec[S], bool) {
	i, ok := t.byKey[strings.ToLower(key)]
	if !ok {
		return fieldSpec[S]{}, false
	}
	return t.fields[i], true
}

func scalarField[S, T any](key string, decode func(string) (T, error), format func(T) string, ptr func(*S) *T) fieldSpec[S] {
	return fieldSpec[S]{
		key: key,
		decode: func(s *S, value string) error {
			v, err := decode(value)
			if err != nil {
				return withField(key, err)
			}
			*ptr(s) = v
			return nil
		},
		encode: func(s *S) (string, bool) {
			return format(*ptr(s)), true
		},
	}
}

func listField[S, T any](key, sep string, omitEmpty bool, decode func(string) (T, error), format func(T) string, ptr func(*S) *[]T) fieldSpec[S] {
	return fieldSpec[S]{
		key: key,
		decode: func(s *S, value string) error {
			v, err := decodeList(value, sep, decode)
			if err != nil {
				return withField(key, err)
			}
			*ptr(s) = v
			return nil
		},
		encode: func(s *S) (string, bool) {
			items := *ptr(s)
			if omitEmpty && len(items) == 0 {
				return "", false
			}
			return formatList(items, sep, format), true
		},
	}
}

func stringField[S any](key string, ptr func(*S) *string) fieldSpec[S] {
	return scalarField(key, decodeString, func(s string) string { return s }, ptr)
}

func intField[S any](key string, ptr func(*S) *int) fieldSpec[S] {
	return scalarField(key, decodeInt, formatInt, ptr)
}

func floatField[S any](key string, ptr func(*S) *float64) fieldSpec[S] {
	return scalarField(key, decodeFloat, formatFloat, ptr)
}

func boolField[S any](key string, ptr func(*S) *bool) fieldSpec[S] {
	return scalarField(key, decodeBool, formatBool, ptr)
}

// splitPair splits a "key: value" line on its first colon. Both sides are
// trimmed and the key must not be empty.
func splitPair(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	k = strings.TrimSpace(k)
	if k == "" {
		return "", "", false
	}
	return k, strings.TrimSpace(v), true
}

// scanKeyValues consumes the current line (a section header) and hands every
// following key-value pair to visit. It stops on the first line that is not
// a pair, leaving the cursor on it.
func scanKeyValues(cur *cursor, visit func(key, value string) error) error {
	for {
		line, ok := cur.Advance()
		if !ok {
			return nil
		}
		key, value, ok := splitPair(line.Text)
		if !ok {
			return nil
		}
		if err := visit(key, value); err != nil {
			return attachLine(err, line)
		}
	}
}

// parseFields fills section from a key-value block. Unknown keys are skipped
// so newer format revisions still load.
func parseFields[S any](cur *cursor, table *fieldTable[S], section S) (S, error) {
	err := scanKeyValues(cur, func(key, value string) error {
		f, ok := table.lookup(key)
		if !ok {
			return nil
		}
		return f.decode(&section, value)
	})
	return section, err
}
