package executor

import (
	"github.com/ccbrown/gqlcore/graphql/ast"
)

// GroupedFieldSetItem contains a response key and the fields selected under it.
type GroupedFieldSetItem struct {
	Key    string
	Fields []*ast.Field
}

// GroupedFieldSet holds selected fields grouped by response key, in the order each key first
// appears.
type GroupedFieldSet struct {
	m     map[string]int
	items []GroupedFieldSetItem
}

// NewGroupedFieldSetWithCapacity allocates a GroupedFieldSet with capacity for n elements.
func NewGroupedFieldSetWithCapacity(n int) *GroupedFieldSet {
	return &GroupedFieldSet{
		m:     make(map[string]int, n),
		items: make([]GroupedFieldSetItem, 0, n),
	}
}

// CollectFields groups the selections by response key. Selecting the same key twice yields a
// single result entry whose subselections are merged.
func CollectFields(selections []*ast.Field) *GroupedFieldSet {
	ret := NewGroupedFieldSetWithCapacity(len(selections))
	for _, field := range selections {
		ret.Append(field.ResponseKey(), field)
	}
	return ret
}

// Append appends a field to the list for the given key.
func (m *GroupedFieldSet) Append(key string, field *ast.Field) {
	if idx, ok := m.m[key]; !ok {
		m.m[key] = len(m.items)
		m.items = append(m.items, GroupedFieldSetItem{
			Key:    key,
			Fields: []*ast.Field{field},
		})
	} else {
		m.items[idx].Fields = append(m.items[idx].Fields, field)
	}
}

// Len returns the length of the GroupedFieldSet
func (m *GroupedFieldSet) Len() int {
	return len(m.items)
}

// Items returns the items in the GroupedFieldSet, in the order they were added.
func (m *GroupedFieldSet) Items() []GroupedFieldSetItem {
	return m.items
}

func hasSelectionSet(fields []*ast.Field) bool {
	for _, field := range fields {
		if field.SelectionSet != nil {
			return true
		}
	}
	return false
}

func mergeSelectionSets(fields []*ast.Field) []*ast.Field {
	var selections []*ast.Field
	for _, field := range fields {
		if field.SelectionSet == nil {
			continue
		}
		selections = append(selections, field.SelectionSet.Selections...)
	}
	return selections
}
