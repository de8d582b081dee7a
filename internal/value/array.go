package value

import "fmt"

// Resize turns the value into an array of n elements, padding with nulls or dropping
// trailing elements as needed.
func (v *Value) Resize(n int) *Value {
	if n < 0 {
		panic(fmt.Sprintf("value: negative array size %d", n))
	}
	v.SetType(TypeArray)
	if n <= len(v.nodes) {
		clear(v.nodes[n:])
		v.nodes = v.nodes[:n]
		return v
	}
	for len(v.nodes) < n {
		v.nodes = append(v.nodes, Entry{Value: Null()})
	}
	return v
}

// Index returns the element at i for modification. The receiver becomes an array if it
// was not one, and grows with null elements so that i is in range.
func (v *Value) Index(i int) *Value {
	if i < 0 {
		panic(fmt.Sprintf("value: negative array index %d", i))
	}
	v.SetType(TypeArray)
	if i >= len(v.nodes) {
		v.Resize(i + 1)
	}
	return v.nodes[i].Value
}

// At returns the element at i. Out of range indexes and non-array receivers yield a
// detached null value.
func (v *Value) At(i int) *Value {
	if !v.IsArray() || i < 0 || i >= len(v.nodes) {
		return Null()
	}
	return v.nodes[i].Value
}

// Elements returns the elements of an array in order, nil for any other value
func (v *Value) Elements() []*Value {
	if !v.IsArray() {
		return nil
	}
	items := make([]*Value, len(v.nodes))
	for n, e := range v.nodes {
		items[n] = e.Value
	}
	return items
}

// Insert places a copy of item before position pos, clamped to the array bounds
func (v *Value) Insert(pos int, item *Value) *Value {
	v.SetType(TypeArray)
	pos = max(0, min(pos, len(v.nodes)))
	v.nodes = append(v.nodes, Entry{})
	copy(v.nodes[pos+1:], v.nodes[pos:])
	v.nodes[pos] = Entry{Value: item.Clone()}
	return v
}

// Push appends a copy of item to the array
func (v *Value) Push(item *Value) *Value {
	v.SetType(TypeArray)
	v.nodes = append(v.nodes, Entry{Value: item.Clone()})
	return v
}

// Append adds a null element to the array and returns it
func (v *Value) Append() *Value {
	v.SetType(TypeArray)
	item := Null()
	v.nodes = append(v.nodes, Entry{Value: item})
	return item
}

// Pop removes the last element of a non-empty array
func (v *Value) Pop() *Value {
	if v.IsArray() && len(v.nodes) > 0 {
		v.nodes[len(v.nodes)-1] = Entry{}
		v.nodes = v.nodes[:len(v.nodes)-1]
	}
	return v
}

// EraseRange removes count elements starting at start. The range is clamped to the
// array bounds and non-array values are left alone.
func (v *Value) EraseRange(start, count int) *Value {
	if !v.IsArray() || count <= 0 {
		return v
	}
	start = max(0, min(start, len(v.nodes)))
	end := min(start+count, len(v.nodes))
	n := copy(v.nodes[start:], v.nodes[end:])
	clear(v.nodes[start+n:])
	v.nodes = v.nodes[:start+n]
	return v
}
