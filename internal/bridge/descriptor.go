package bridge

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/Mohsinsiddi/stakeforms/internal/contract"
)

// Category groups descriptors into the console's sections.
type Category string

const (
	CategoryWrite      Category = "write"
	CategoryRead       Category = "read"
	CategoryAdmin      Category = "admin"
	CategoryProxyAdmin Category = "proxy-admin"
	CategoryProxyRead  Category = "proxy-read"
)

// Categories lists the sections in display order.
var Categories = []Category{
	CategoryWrite,
	CategoryRead,
	CategoryAdmin,
	CategoryProxyAdmin,
	CategoryProxyRead,
}

// ParseCategory resolves a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown section %q (want one of %s)", s, categoryNames())
}

func categoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Title is the section heading.
func (c Category) Title() string {
	switch c {
	case CategoryWrite:
		return "Write Section"
	case CategoryRead:
		return "Read Section"
	case CategoryAdmin:
		return "Admin Section"
	case CategoryProxyAdmin:
		return "Proxy Owner Section"
	case CategoryProxyRead:
		return "Proxy View Section"
	}
	return string(c)
}

// Mutates reports whether descriptors in this category send transactions.
func (c Category) Mutates() bool {
	return c == CategoryWrite || c == CategoryAdmin || c == CategoryProxyAdmin
}

// ABI is the built-in ABI id the category's descriptors are resolved against.
func (c Category) ABI() string {
	if c == CategoryProxyAdmin || c == CategoryProxyRead {
		return contract.BuiltinProxy
	}
	return contract.BuiltinStaking
}

// ParamHint is one input of a descriptor: the placeholder shown to the user
// and, when the ABI type is one the console understands, its typed kind.
type ParamHint struct {
	Text string
	Kind *contract.ParamKind
}

// Placeholder returns the hint text, or an example for the kind.
func (h ParamHint) Placeholder() string {
	if h.Text != "" {
		return h.Text
	}
	if h.Kind != nil {
		return h.Kind.String() + " " + h.Kind.Example()
	}
	return ""
}

// MethodDescriptor is one contract entry point exposed as a form.
type MethodDescriptor struct {
	Name     string
	Category Category
	Params   []ParamHint
	Mutates  bool
	Help     string
	Method   abi.Method
}

// Key identifies the descriptor uniquely. Names alone collide across
// sections (owner, transferOwnership).
func (d *MethodDescriptor) Key() string {
	return string(d.Category) + "/" + d.Name
}

// FormSpec is the hand-written part of a descriptor: which method, in which
// section, with which placeholders.
type FormSpec struct {
	Category Category
	Name     string
	Params   []string
}

// Table is the ordered, validated descriptor set.
type Table struct {
	Descriptors []*MethodDescriptor
}

// BuildTable resolves every spec against its category's ABI and validates
// the result. abis is keyed by built-in ABI id.
func BuildTable(specs []FormSpec, abis map[string]abi.ABI, help map[string]string) (*Table, error) {
	t := &Table{Descriptors: make([]*MethodDescriptor, 0, len(specs))}
	for _, s := range specs {
		parsed, ok := abis[s.Category.ABI()]
		if !ok {
			return nil, fmt.Errorf("%w: %s (section %s)", ErrNoABI, s.Category.ABI(), s.Category)
		}
		m, ok := parsed.Methods[s.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s in %s ABI", ErrUnknownMethod, s.Name, s.Category.ABI())
		}

		d := &MethodDescriptor{
			Name:     s.Name,
			Category: s.Category,
			Mutates:  s.Category.Mutates(),
			Help:     help[s.Name],
			Method:   m,
			Params:   make([]ParamHint, len(s.Params)),
		}
		for i, text := range s.Params {
			d.Params[i].Text = text
			if i < len(m.Inputs) {
				if k, err := contract.KindOf(m.Inputs[i].Type); err == nil {
					d.Params[i].Kind = &k
				}
			}
		}
		t.Descriptors = append(t.Descriptors, d)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks arity and mutability of every descriptor against its ABI
// method and rejects duplicates within a section.
func (t *Table) Validate() error {
	seen := make(map[string]bool, len(t.Descriptors))
	for _, d := range t.Descriptors {
		if seen[d.Key()] {
			return fmt.Errorf("duplicate form %s", d.Key())
		}
		seen[d.Key()] = true

		if len(d.Params) != len(d.Method.Inputs) {
			return fmt.Errorf("%w: %s has %d placeholders, ABI declares %d inputs",
				ErrArityMismatch, d.Key(), len(d.Params), len(d.Method.Inputs))
		}
		if d.Mutates == d.Method.IsConstant() {
			return fmt.Errorf("%w: %s is %s but sits in %s",
				ErrMutabilityMismatch, d.Key(), d.Method.StateMutability, d.Category.Title())
		}
	}
	return nil
}

// InCategory returns the descriptors of one section in table order.
func (t *Table) InCategory(c Category) []*MethodDescriptor {
	var out []*MethodDescriptor
	for _, d := range t.Descriptors {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// Find resolves a method name. A bare name matches the first section that
// has it; "section/name" picks the section explicitly.
func (t *Table) Find(name string) (*MethodDescriptor, error) {
	if i := strings.Index(name, "/"); i >= 0 {
		c, err := ParseCategory(name[:i])
		if err != nil {
			return nil, err
		}
		name = name[i+1:]
		for _, d := range t.InCategory(c) {
			if d.Name == name {
				return d, nil
			}
		}
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownMethod, c, name)
	}
	for _, c := range Categories {
		for _, d := range t.InCategory(c) {
			if d.Name == name {
				return d, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
}
