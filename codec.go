package quantity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Property is one unrecognized document field carried alongside a
// quantity. Properties are kept verbatim and in order, so a quantity
// embedded in a larger document round-trips without losing fields the
// engine does not know about. The numeric engine never inspects them.
type Property struct {
	Name  string
	Value json.RawMessage
}

// AdditionalProperties returns a copy of the unrecognized document
// fields of the quantity, in the order they were read or set.
func (q Quantity) AdditionalProperties() []Property {
	if len(q.extra) == 0 {
		return nil
	}
	props := make([]Property, len(q.extra))
	copy(props, q.extra)
	return props
}

// SetAdditionalProperty stores an unrecognized document field on the
// quantity. Setting a name again replaces its value in place; new
// names append.
func (q *Quantity) SetAdditionalProperty(name string, value json.RawMessage) {
	for i := range q.extra {
		if q.extra[i].Name == name {
			q.extra[i].Value = value
			return
		}
	}
	q.extra = append(q.extra, Property{Name: name, Value: value})
}

// MarshalJSON implements the [json.Marshaler] interface.
// A quantity without additional properties marshals to its canonical
// string; one with additional properties marshals to an object with
// the amount, the format, and every extra field in order.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (q Quantity) MarshalJSON() ([]byte, error) {
	if len(q.extra) == 0 {
		return json.Marshal(q.String())
	}
	var buf bytes.Buffer
	buf.WriteString(`{"amount":`)
	if err := encodeJSONString(&buf, q.amount); err != nil {
		return nil, err
	}
	buf.WriteString(`,"format":`)
	if err := encodeJSONString(&buf, q.suffix); err != nil {
		return nil, err
	}
	for _, p := range q.extra {
		buf.WriteByte(',')
		if err := encodeJSONString(&buf, p.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		buf.Write(p.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// It accepts the canonical string form, a bare JSON number, null, or
// an object with "amount" and "format" fields. Object fields beyond
// those two are preserved verbatim and re-emitted in order by
// [Quantity.MarshalJSON].
// See also constructor [Parse].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (q *Quantity) UnmarshalJSON(text []byte) error {
	data := bytes.TrimSpace(text)
	if string(data) == "null" {
		return nil
	}
	switch {
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshaling %T: %w", Quantity{}, err)
		}
		p, err := Parse(s)
		if err != nil {
			return fmt.Errorf("unmarshaling %T: %w", Quantity{}, err)
		}
		*q = p
		return nil
	case len(data) > 0 && data[0] == '{':
		return q.unmarshalJSONObject(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unmarshaling %T: %w", Quantity{}, err)
		}
		p, err := Parse(n.String())
		if err != nil {
			return fmt.Errorf("unmarshaling %T: %w", Quantity{}, err)
		}
		*q = p
		return nil
	}
}

// unmarshalJSONObject decodes the object form field by field so that
// unrecognized fields keep their document order.
func (q *Quantity) unmarshalJSONObject(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // consume '{'
		return fmt.Errorf("unmarshaling %T: %w", Quantity{}, err)
	}
	p := Quantity{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("unmarshaling %T: %w", Quantity{}, err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unmarshaling %T: unexpected token %v", Quantity{}, tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("unmarshaling %T: %w", Quantity{}, err)
		}
		switch name {
		case "amount":
			p.amount, err = decodeJSONScalar(raw)
		case "format":
			p.suffix, err = decodeJSONScalar(raw)
		default:
			p.extra = append(p.extra, Property{Name: name, Value: raw})
		}
		if err != nil {
			return fmt.Errorf("unmarshaling %T: %w", Quantity{}, err)
		}
	}
	*q = p
	return nil
}

// decodeJSONScalar accepts a JSON string or number as a Go string.
// Document frameworks emit quantity amounts both ways.
func decodeJSONScalar(raw json.RawMessage) (string, error) {
	data := bytes.TrimSpace(raw)
	if string(data) == "null" {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (q *Quantity) UnmarshalText(text []byte) error {
	p, err := Parse(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Quantity{}, err)
	}
	*q = p
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns the canonical string form.
// See also method [Quantity.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (q Quantity) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (q *Quantity) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*q, err = Parse(value)
	case []byte:
		*q, err = Parse(string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values", Quantity{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Quantity{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (q Quantity) Value() (driver.Value, error) {
	return q.String(), nil
}
