package attrs

// In-memory description node
type Record struct {
	Name       string
	Attributes map[string]string
	Items      []*Record
	Content    string

	parent *Record
}

// Creates a record and adopts the given children
func NewRecord(tag string, attributes map[string]string, children ...*Record) *Record {
	r := &Record{
		Name:       localName(tag),
		Attributes: make(map[string]string, len(attributes)),
	}

	for name, value := range attributes {
		r.Attributes[localName(name)] = value
	}

	r.Add(children...)

	return r
}

// Appends children to the record
func (r *Record) Add(children ...*Record) *Record {
	for _, child := range children {
		child.parent = r
		r.Items = append(r.Items, child)
	}

	return r
}

func (r *Record) Tag() string {
	return r.Name
}

func (r *Record) Attr(name string) (string, bool) {
	value, ok := r.Attributes[localName(name)]
	return value, ok
}

func (r *Record) Children() []Node {
	children := make([]Node, len(r.Items))

	for i, item := range r.Items {
		children[i] = item
	}

	return children
}

func (r *Record) Parent() Node {
	if r.parent == nil {
		return nil
	}

	return r.parent
}

func (r *Record) Text() string {
	return r.Content
}
