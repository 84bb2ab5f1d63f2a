package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ============================================================
// Chart Spec
// ============================================================

type ChartType string

const (
	TypeBar     ChartType = "bar"
	TypeLine    ChartType = "line"
	TypeScatter ChartType = "scatter"
	TypePie     ChartType = "pie"
	TypeTable   ChartType = "table"
)

// DefaultColor основной цвет bar/line/scatter, если в спеке не задан.
const DefaultColor = "#3b82f6"

// ChartSpec декларативное описание одного графика.
// Имена JSON-полей являются схемой и сохраняются как есть.
type ChartSpec struct {
	Type     ChartType `json:"type"`
	Data     []Row     `json:"data"`
	XKey     string    `json:"xKey,omitempty"`
	YKey     string    `json:"yKey,omitempty"`
	ValueKey string    `json:"valueKey,omitempty"`
	Labels   []string  `json:"labels,omitempty"`
	Title    string    `json:"title,omitempty"`
	Color    string    `json:"color,omitempty"`
}

// IsCartesian сообщает, рисуется ли тип на осях X/Y.
func (t ChartType) IsCartesian() bool {
	return t == TypeBar || t == TypeLine || t == TypeScatter
}

// ============================================================
// Row
// ============================================================

type Field struct {
	Key   string
	Value any
}

// Row запись данных с сохранением порядка полей.
// Порядок нужен таблице: колонки берутся из первой строки.
type Row []Field

type undefinedValue struct{}

// Undefined значение отсутствующего поля.
var Undefined any = undefinedValue{}

// Get возвращает значение поля и признак его наличия.
func (r Row) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Value возвращает значение поля или Undefined.
func (r Row) Value(key string) any {
	if v, ok := r.Get(key); ok {
		return v
	}
	return Undefined
}

// Keys возвращает имена полей в порядке вставки.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, f := range r {
		keys = append(keys, f.Key)
	}
	return keys
}

// With возвращает строку с установленным полем. Повторный ключ
// сохраняет свою первую позицию.
func (r Row) With(key string, value any) Row {
	for i, f := range r {
		if f.Key == key {
			out := make(Row, len(r))
			copy(out, r)
			out[i].Value = value
			return out
		}
	}
	return append(r[:len(r):len(r)], Field{Key: key, Value: value})
}

func (r Row) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row: expected object, got %v", tok)
	}

	row := Row{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("row: unexpected key %v", tok)
		}

		var val any
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("row field %q: %w", key, err)
		}
		row = row.With(key, val)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = row
	return nil
}
