package layout

import (
	"fmt"
	"slices"
)

// NewComponent is the default ComponentFactory. Unknown tags yield a Stack.
func NewComponent(t Type) Component {
	switch t {
	case TypeWindow:
		return NewWindow()
	case TypeHSplit:
		return NewHSplit()
	case TypeVSplit:
		return NewVSplit()
	case TypeGrid:
		return NewGrid()
	case TypeDashboard:
		return NewDashboard()
	case TypeDashboardList:
		return NewDashboardList()
	default:
		return NewStack()
	}
}

// Build creates a detached tree from cfg using factory, or NewComponent
// when factory is nil. The factory stays installed on the returned root.
func Build(cfg Config, factory ComponentFactory) (Component, error) {
	if factory == nil {
		factory = NewComponent
	}
	root := factory(cfg.Type)
	if root == nil {
		return nil, fmt.Errorf("%w: component factory returned nil for %q", ErrIllegalState, cfg.Type)
	}
	root.SetComponentFactory(factory)
	if err := root.SetConfig(cfg); err != nil {
		return nil, fmt.Errorf("build %s: %w", cfg.Type, err)
	}
	return root, nil
}

// Create builds a component of type t with the factory inherited at from,
// so containers made by edits get the configured sizing. A nil from, or a
// factory returning another type, falls back to NewComponent.
func Create[T Component](from Component, t Type) T {
	if from != nil {
		if f := from.ComponentFactory(); f != nil {
			if c, ok := f(t).(T); ok {
				return c
			}
		}
	}
	c, _ := NewComponent(t).(T)
	return c
}

// SplitType returns the type tag of a split along o.
func SplitType(o Orientation) Type {
	if o == Vertical {
		return TypeVSplit
	}
	return TypeHSplit
}

// ValidTypes lists every serialized type tag.
func ValidTypes() []Type {
	return []Type{TypeWindow, TypeHSplit, TypeVSplit, TypeStack, TypeGrid, TypeDashboard, TypeDashboardList}
}

// Known reports whether t is one of the serialized type tags.
func (t Type) Known() bool {
	return slices.Contains(ValidTypes(), t)
}

// Defaults holds sizing applied to freshly built components. Zero fields
// keep the built-in value.
type Defaults struct {
	SplitterSize   int
	MinItemSize    int
	TabHeight      int
	CellSize       int
	CellMargin     int
	DefaultColSpan int
	DefaultRowSpan int
}

// Factory returns a ComponentFactory that builds with NewComponent and
// then applies d. Saved per-component values still win in SetConfig.
func (d Defaults) Factory() ComponentFactory {
	return func(t Type) Component {
		c := NewComponent(t)
		switch v := c.(type) {
		case *Split:
			if d.SplitterSize > 0 {
				v.SetSplitterSize(d.SplitterSize)
			}
			if d.MinItemSize > 0 {
				v.SetMinItemSize(d.MinItemSize)
			}
		case *Stack:
			if d.TabHeight > 0 {
				v.SetTabHeight(d.TabHeight)
			}
		case *Grid:
			if d.CellSize > 0 {
				v.SetCellSize(d.CellSize)
			}
			if d.CellMargin > 0 {
				v.SetCellMargin(d.CellMargin)
			}
			if d.DefaultColSpan > 0 && d.DefaultRowSpan > 0 {
				v.SetDefaultSpans(d.DefaultColSpan, d.DefaultRowSpan)
			}
		}
		return c
	}
}
