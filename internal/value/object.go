package value

import (
	"strconv"
	"strings"
)

// Key returns the value stored under key for modification. The receiver becomes an
// object if it was not one; a missing key is appended with a null value.
func (v *Value) Key(key string) *Value {
	v.SetType(TypeObject)
	if found, ok := v.Find(key); ok {
		return found
	}
	return v.AppendEntry(key)
}

// AppendEntry adds a (key, null) entry even when key already exists and returns the
// new value. The receiver becomes an object if it was not one.
func (v *Value) AppendEntry(key string) *Value {
	v.SetType(TypeObject)
	item := Null()
	v.nodes = append(v.nodes, Entry{Key: key, Value: item})
	return item
}

// Get returns the first value stored under key, or a detached null value when the key
// is missing or the receiver is not an object.
func (v *Value) Get(key string) *Value {
	if found, ok := v.Find(key); ok {
		return found
	}
	return Null()
}

// Find returns the first value stored under key
func (v *Value) Find(key string) (*Value, bool) {
	if !v.IsObject() {
		return nil, false
	}
	for _, e := range v.nodes {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Set stores a copy of item under key, replacing the first existing entry
func (v *Value) Set(key string, item *Value) *Value {
	v.Key(key).Assign(item)
	return v
}

// Remove deletes the first entry stored under key and reports whether one was found
func (v *Value) Remove(key string) bool {
	if !v.IsObject() {
		return false
	}
	for n, e := range v.nodes {
		if e.Key == key {
			copy(v.nodes[n:], v.nodes[n+1:])
			clear(v.nodes[len(v.nodes)-1:])
			v.nodes = v.nodes[:len(v.nodes)-1]
			return true
		}
	}
	return false
}

// Entries returns the entries of an object in insertion order, nil for any other value.
// The slice is a copy; the values it points to are the live children.
func (v *Value) Entries() []Entry {
	if !v.IsObject() {
		return nil
	}
	entries := make([]Entry, len(v.nodes))
	copy(entries, v.nodes)
	return entries
}

// Lookup follows a path such as `textures[2].Source` from the receiver without
// modifying anything. Dots separate object keys, brackets hold array indexes.
func (v *Value) Lookup(path string) (*Value, bool) {
	cur := v
	rest := path
	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, false
			}
			i, err := strconv.Atoi(rest[1:end])
			if err != nil || !cur.IsArray() || i < 0 || i >= cur.Len() {
				return nil, false
			}
			cur = cur.nodes[i].Value
			rest = rest[end+1:]
		default:
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			next, ok := cur.Find(rest[:end])
			if !ok {
				return nil, false
			}
			cur = next
			rest = rest[end:]
		}
	}
	return cur, true
}
