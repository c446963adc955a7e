package request

// Header is a single header entry.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header mapping. Names are unique and compared with
// exact case, as supplied by the caller.
type Headers []Header

// Set returns h with name bound to value. An existing entry keeps its
// position and takes the new value; a new name is appended.
func (h Headers) Set(name, value string) Headers {
	for i := range h {
		if h[i].Name == name {
			out := make(Headers, len(h))
			copy(out, h)
			out[i].Value = value
			return out
		}
	}
	out := make(Headers, len(h), len(h)+1)
	copy(out, h)
	return append(out, Header{Name: name, Value: value})
}

// Get returns the value for name and whether it was present.
func (h Headers) Get(name string) (string, bool) {
	for _, hdr := range h {
		if hdr.Name == name {
			return hdr.Value, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (h Headers) Len() int {
	return len(h)
}
