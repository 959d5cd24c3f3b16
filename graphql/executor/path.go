package executor

// path is a linked list of response keys and list indices, from the leaf up to the root. Branches
// share their common prefix, so concurrent resolution never mutates a shared path.
type path struct {
	Prev      *path
	Component interface{}
}

func (p *path) WithComponent(component interface{}) *path {
	return &path{
		Prev:      p,
		Component: component,
	}
}

func (p *path) Len() int {
	n := 0
	for ; p != nil; p = p.Prev {
		n++
	}
	return n
}

func (p *path) Slice() []interface{} {
	if p == nil {
		return nil
	}
	ret := make([]interface{}, p.Len())
	for i := len(ret) - 1; p != nil; i, p = i-1, p.Prev {
		ret[i] = p.Component
	}
	return ret
}
