package types

// Pair is a single key/value entry of an EnvTable.
type Pair struct {
	Key   string
	Value string
}

// EnvTable is the result of parsing a dotenv file: an ordered sequence of
// pairs with unique, non-empty keys. A table is built once by NewEnvTable and
// is read-only afterwards.
type EnvTable struct {
	keys   []string
	values map[string]string
}

// NewEnvTable builds a table from pairs in order. Pairs with an empty key are
// dropped. A repeated key keeps the position of its first occurrence and the
// value of its last.
func NewEnvTable(pairs ...Pair) EnvTable {
	t := EnvTable{values: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		if p.Key == "" {
			continue
		}
		if _, seen := t.values[p.Key]; !seen {
			t.keys = append(t.keys, p.Key)
		}
		t.values[p.Key] = p.Value
	}
	return t
}

// Len returns the number of distinct keys.
func (t EnvTable) Len() int { return len(t.keys) }

// IsEmpty reports whether the table holds no entries.
func (t EnvTable) IsEmpty() bool { return len(t.keys) == 0 }

// Get returns the value for key, or "" when absent.
func (t EnvTable) Get(key string) string { return t.values[key] }

// Lookup returns the value for key and whether it is present. Empty values
// are valid entries, so callers that care must use Lookup rather than Get.
func (t EnvTable) Lookup(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns the keys in table order.
func (t EnvTable) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Pairs returns the entries in table order.
func (t EnvTable) Pairs() []Pair {
	out := make([]Pair, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, Pair{Key: k, Value: t.values[k]})
	}
	return out
}

// Map returns a copy of the entries as a map.
func (t EnvTable) Map() map[string]string {
	out := make(map[string]string, len(t.keys))
	for _, k := range t.keys {
		out[k] = t.values[k]
	}
	return out
}
