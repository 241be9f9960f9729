package layout

// DefaultTabHeight is the height of the tab bar above the active window.
const DefaultTabHeight = 28

// Stack is a tabbed window manager: only the active window is visible.
type Stack struct {
	windowManager

	tabHeight int
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	s := &Stack{tabHeight: DefaultTabHeight}
	s.initManager(s)
	s.defaults = WindowSettings{
		BorderWidth:  intPtr(0),
		HeaderHeight: intPtr(0),
		Resizable:    boolPtr(false),
		Draggable:    boolPtr(true),
	}
	return s
}

func boolPtr(v bool) *bool { return &v }

func (s *Stack) Type() Type { return TypeStack }

// TabHeight returns the tab bar height.
func (s *Stack) TabHeight() int { return s.tabHeight }

// SetTabHeight changes the tab bar height.
func (s *Stack) SetTabHeight(h int) {
	if h < 0 || h == s.tabHeight {
		return
	}
	s.tabHeight = h
	s.layout()
}

// TabBar returns the rectangle of the tab bar.
func (s *Stack) TabBar() Viewport {
	vp := s.viewport
	return Viewport{X: vp.X, Y: vp.Y, Width: vp.Width, Height: min(s.tabHeight, vp.Height)}
}

// layout is layoutStack: the active window fills the content area under
// the tab bar, the others collapse to an empty rectangle.
func (s *Stack) layout() {
	vp := s.viewport
	tab := min(s.tabHeight, vp.Height)
	active := s.ActiveWindow()
	for _, w := range s.windows {
		if w == active {
			w.SetViewport(vp.X, vp.Y+tab, vp.Width, vp.Height-tab)
			continue
		}
		w.SetViewport(vp.X, vp.Y+tab, 0, 0)
	}
}

// SplitLeft places c (or a new stack filled through AddNew) left of this
// stack. It returns the new sibling stack, or this stack unchanged when c
// is already its only window.
func (s *Stack) SplitLeft(c Component) (*Stack, error) {
	return s.splitWith(c, Horizontal, true)
}

// SplitRight places the new sibling right of this stack.
func (s *Stack) SplitRight(c Component) (*Stack, error) {
	return s.splitWith(c, Horizontal, false)
}

// SplitTop places the new sibling above this stack.
func (s *Stack) SplitTop(c Component) (*Stack, error) {
	return s.splitWith(c, Vertical, true)
}

// SplitBottom places the new sibling below this stack.
func (s *Stack) SplitBottom(c Component) (*Stack, error) {
	return s.splitWith(c, Vertical, false)
}

func (s *Stack) splitWith(c Component, o Orientation, leading bool) (*Stack, error) {
	if s.parent == nil {
		return nil, errIllegalState("stack has no parent to split in")
	}
	// Splitting off the only window would leave this side empty.
	if w, ok := c.(*Window); ok && w.Parent() == Component(s) && s.WindowCount() == 1 {
		return s, nil
	}
	sibling, fill, err := s.siblingFor(c)
	if err != nil {
		return nil, err
	}
	if leading {
		err = s.split(o, sibling, s)
	} else {
		err = s.split(o, s, sibling)
	}
	if err != nil {
		return nil, err
	}
	if fill {
		if _, err := sibling.AddNew(); err != nil {
			return sibling, err
		}
	}
	return sibling, nil
}

// siblingFor wraps c into a stack. A nil c yields an empty stack that is
// filled once it is attached, so the inherited AddApp resolves.
func (s *Stack) siblingFor(c Component) (*Stack, bool, error) {
	switch v := c.(type) {
	case nil:
		return Create[*Stack](s, TypeStack), true, nil
	case *Stack:
		if v == s {
			return nil, false, ErrCycle
		}
		return v, false, nil
	case *Window:
		st := Create[*Stack](s, TypeStack)
		st.Add(v, AddOptions{MakeActive: true})
		return st, false, nil
	default:
		return nil, false, ErrUnsupportedChild
	}
}

// split replaces this stack in its parent with a new split holding first
// and second.
func (s *Stack) split(o Orientation, first, second Component) error {
	parent := s.parent
	if parent == nil {
		// Happens when the dropped window was the last one of this stack.
		return errIllegalState("stack was removed while splitting")
	}
	sp := Create[*Split](s, SplitType(o))
	if err := parent.Replace(sp, s); err != nil {
		return err
	}
	if err := sp.SetFirst(first); err != nil {
		return err
	}
	return sp.SetSecond(second)
}

// SplitHorizontal is SplitRight.
func (s *Stack) SplitHorizontal(c Component) (*Stack, error) { return s.SplitRight(c) }

// SplitVertical is SplitBottom.
func (s *Stack) SplitVertical(c Component) (*Stack, error) { return s.SplitBottom(c) }

// DropWindow moves w before ref, or to the end without ref, and activates it.
func (s *Stack) DropWindow(w, ref *Window) {
	if w == nil {
		return
	}
	if ref != nil && s.IndexOf(ref) >= 0 && ref != w {
		s.InsertBefore(w, ref)
	} else {
		s.Add(w, AddOptions{})
	}
	s.Activate(w)
}

// Config returns the persisted snapshot. Transient windows are skipped.
func (s *Stack) Config() Config {
	wins, active, _ := s.windowConfigs()
	return Config{
		Type:          TypeStack,
		ActiveIndex:   intPtr(active),
		Windows:       wins,
		CloseDisabled: s.ownCloseDisabled(),
	}
}

// SetConfig restores the snapshot.
func (s *Stack) SetConfig(cfg Config) error {
	s.closeDisabled = clonePtr(cfg.CloseDisabled)
	if err := s.setWindowConfigs(cfg.Windows); err != nil {
		return err
	}
	s.activeIndex = 0
	if cfg.ActiveIndex != nil {
		s.activeIndex = *cfg.ActiveIndex
	}
	s.changed()
	s.layout()
	return nil
}
