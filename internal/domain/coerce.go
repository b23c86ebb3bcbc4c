package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The browser sends the same field as a string, a number or a bool depending
// on which form control produced it. The Flex types below decode those
// values at the API boundary. Each one records whether the key carried a
// usable value (Set), so absent keys and explicit nulls leave the stored
// column untouched on partial updates.
//
// Truthiness (FlexBool):
//
//	false, null, "", "0", "false", "no", "off", 0  -> false
//	anything else that is present                  -> true

// FlexInt decodes a JSON number, numeric string or bool into an integer.
// Fractions are truncated. null and "" leave it unset.
type FlexInt struct {
	Value int64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt{}
	v, ok, err := decodeInt(data)
	if err != nil {
		return err
	}
	f.Value, f.Set = v, ok
	return nil
}

// Or returns the decoded value or def when unset.
func (f FlexInt) Or(def int) int {
	if !f.Set {
		return def
	}
	return int(f.Value)
}

// Ptr returns nil when unset.
func (f FlexInt) Ptr() *int {
	if !f.Set {
		return nil
	}
	v := int(f.Value)
	return &v
}

// Int creates a set FlexInt.
func Int(v int64) FlexInt {
	return FlexInt{Value: v, Set: true}
}

// FlexInt32 is a FlexInt for INTEGER columns. Values outside the int32
// range are rejected as ErrInvalidPayload.
type FlexInt32 struct {
	FlexInt
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt32) UnmarshalJSON(data []byte) error {
	*f = FlexInt32{}
	var v FlexInt
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	if v.Set && (v.Value > math.MaxInt32 || v.Value < math.MinInt32) {
		return fmt.Errorf("%w: %d is out of range", ErrInvalidPayload, v.Value)
	}
	f.FlexInt = v
	return nil
}

// Int32 creates a set FlexInt32.
func Int32(v int32) FlexInt32 {
	return FlexInt32{Int(int64(v))}
}

// FlexBool decodes loosely typed booleans using the truthiness table above.
// null leaves it unset (and false).
type FlexBool struct {
	Value bool
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	*f = FlexBool{}
	raw, err := decodeLoose(data)
	if err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		return nil
	case bool:
		f.Value = v
	case json.Number:
		n, err := strconv.ParseFloat(v.String(), 64)
		f.Value = err == nil && n != 0
	case string:
		f.Value = Truthy(v)
	default:
		f.Value = true
	}
	f.Set = true
	return nil
}

// Bool creates a set FlexBool.
func Bool(v bool) FlexBool {
	return FlexBool{Value: v, Set: true}
}

// Truthy applies the string half of the truthiness table.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "off", "null":
		return false
	}
	return true
}

// FlexString accepts strings, numbers and bools. null leaves it unset.
type FlexString struct {
	Value string
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	*f = FlexString{}
	raw, err := decodeLoose(data)
	if err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		f.Value = v
	case json.Number:
		f.Value = v.String()
	case bool:
		f.Value = strconv.FormatBool(v)
	default:
		return fmt.Errorf("%w: expected text, got %s", ErrInvalidPayload, truncate(data))
	}
	f.Set = true
	return nil
}

// Or returns the decoded value or def when unset.
func (f FlexString) Or(def string) string {
	if !f.Set {
		return def
	}
	return f.Value
}

// Ptr returns nil when unset.
func (f FlexString) Ptr() *string {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// String creates a set FlexString.
func String(v string) FlexString {
	return FlexString{Value: v, Set: true}
}

// FlexCount decodes death-save markers. The UI sends either the list of
// checked boxes or a plain number; both collapse to a count in 0..3.
type FlexCount struct {
	Value int
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexCount) UnmarshalJSON(data []byte) error {
	*f = FlexCount{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		f.Value, f.Set = clampDeathSaves(len(items)), true
		return nil
	}
	v, ok, err := decodeInt(data)
	if err != nil {
		return err
	}
	if ok {
		f.Value, f.Set = clampDeathSaves(int(v)), true
	}
	return nil
}

// NullableID tracks a foreign key that may be explicitly cleared with null.
type NullableID struct {
	Value int64
	Set   bool
	Null  bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableID) UnmarshalJSON(data []byte) error {
	*n = NullableID{Set: true}
	v, ok, err := decodeInt(data)
	if err != nil {
		return err
	}
	if !ok || v <= 0 {
		n.Null = true
		return nil
	}
	n.Value = v
	return nil
}

// Ptr returns nil for an explicit null.
func (n NullableID) Ptr() *int64 {
	if n.Null {
		return nil
	}
	v := n.Value
	return &v
}

func decodeLoose(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return raw, nil
}

func decodeInt(data []byte) (int64, bool, error) {
	raw, err := decodeLoose(data)
	if err != nil {
		return 0, false, err
	}
	switch v := raw.(type) {
	case nil:
		return 0, false, nil
	case bool:
		if v {
			return 1, true, nil
		}
		return 0, true, nil
	case json.Number:
		return parseInt(v.String())
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		return parseInt(s)
	default:
		return 0, false, fmt.Errorf("%w: expected integer, got %s", ErrInvalidPayload, truncate(data))
	}
}

func parseInt(s string) (int64, bool, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0, false, fmt.Errorf("%w: %q is not a number", ErrInvalidPayload, s)
	}
	return int64(f), true, nil
}

func clampDeathSaves(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxDeathSaves {
		return MaxDeathSaves
	}
	return n
}

func truncate(data []byte) string {
	const max = 40
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
