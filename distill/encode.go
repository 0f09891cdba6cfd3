package distill

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// EncodeJSON serializes a Value tree back to JSON text, preserving field
// order. Synthetic structure-hash and summary fields render as ordinary
// fields, so the output is valid JSON for any standard reader. indent of ""
// yields compact output; otherwise each nesting level is indented by it.
// Output is byte-deterministic for a given tree.
func EncodeJSON(v *Value, indent string) ([]byte, error) {
	w := newCanonWriter()
	if err := encodeValue(v, w, indent, 0); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func encodeValue(v *Value, w *canonWriter, indent string, level int) error {
	if v == nil {
		w.WriteString("null")
		return nil
	}
	switch v.Kind() {
	case KindNull:
		w.WriteString("null")
	case KindBool:
		b, _ := v.AsBool()
		w.WriteString(strconv.FormatBool(b))
	case KindInt:
		i, _ := v.AsInt()
		w.WriteString(strconv.FormatInt(i, 10))
	case KindFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("cannot encode %v as JSON", f)
		}
		w.buf = strconv.AppendFloat(w.buf, f, 'g', -1, 64)
	case KindText:
		s, _ := v.AsText()
		return encodeString(s, w)
	case KindList:
		return encodeList(v, w, indent, level)
	case KindMap:
		return encodeMap(v, w, indent, level)
	}
	return nil
}

func encodeString(s string, w *canonWriter) error {
	// encoding/json handles escaping; Marshal of a string cannot fail.
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	w.buf = append(w.buf, b...)
	return nil
}

func encodeList(v *Value, w *canonWriter, indent string, level int) error {
	elems := v.Elems()
	if len(elems) == 0 {
		w.WriteString("[]")
		return nil
	}
	w.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			w.WriteByte(',')
		}
		newline(w, indent, level+1)
		if err := encodeValue(e, w, indent, level+1); err != nil {
			return err
		}
	}
	newline(w, indent, level)
	w.WriteByte(']')
	return nil
}

func encodeMap(v *Value, w *canonWriter, indent string, level int) error {
	fields := v.Fields()
	if len(fields) == 0 {
		w.WriteString("{}")
		return nil
	}
	w.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		newline(w, indent, level+1)
		if err := encodeString(f.Name, w); err != nil {
			return err
		}
		w.WriteByte(':')
		if indent != "" {
			w.WriteByte(' ')
		}
		if err := encodeValue(f.Value, w, indent, level+1); err != nil {
			return err
		}
	}
	newline(w, indent, level)
	w.WriteByte('}')
	return nil
}

func newline(w *canonWriter, indent string, level int) {
	if indent == "" {
		return
	}
	w.WriteByte('\n')
	for i := 0; i < level; i++ {
		w.WriteString(indent)
	}
}
