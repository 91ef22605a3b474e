package slims

// Record is one SLIMS entity: a primary key plus a flat list of named
// columns. Column values are decoded as generic JSON, the typed accessors
// below convert them on demand.
type Record struct {
	PK        int64    `json:"pk"`
	TableName string   `json:"tableName"`
	Columns   []Column `json:"columns"`
}

type Column struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// Column returns the raw value of the named column.
func (r Record) Column(name string) (interface{}, bool) {
	for i := range r.Columns {
		if r.Columns[i].Name == name {
			return r.Columns[i].Value, true
		}
	}
	return nil, false
}

// String returns the named column as a string, or "" when absent or null.
func (r Record) String(name string) string {
	v, ok := r.Column(name)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Int64 returns the named column as an integer, or 0 when absent or null.
func (r Record) Int64(name string) int64 {
	v, ok := r.Column(name)
	if !ok || v == nil {
		return 0
	}
	f, _ := v.(float64)
	return int64(f)
}

// Bool returns the named column as a bool, false when absent or null.
func (r Record) Bool(name string) bool {
	v, ok := r.Column(name)
	if !ok || v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Int64s returns the named column as a list of integers. SLIMS encodes
// multi-value reference columns as JSON arrays.
func (r Record) Int64s(name string) []int64 {
	v, ok := r.Column(name)
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]interface{})
	if !ok {
		// single value columns come back unwrapped
		if f, isNum := v.(float64); isNum {
			return []int64{int64(f)}
		}
		return nil
	}
	var ans []int64
	for i := range list {
		if f, isNum := list[i].(float64); isNum {
			ans = append(ans, int64(f))
		}
	}
	return ans
}
