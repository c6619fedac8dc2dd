package outline

// scopeFrame is a container symbol still being built during traversal.
// It carries the visibility to restore when the scope closes and a lookup
// index over already-collected members, used by per-name visibility
// corrections such as `private :foo`.
type scopeFrame struct {
	symbol    *Symbol
	saved     Visibility
	byName    map[string]*Symbol
	singleton bool
}

// scopeStack tracks the chain of open container symbols plus the ambient
// visibility state. Push/pop is strictly LIFO; frames never outlive a single
// extraction call.
type scopeStack struct {
	frames     []*scopeFrame
	top        []*Symbol
	topByName  map[string]*Symbol
	visibility Visibility
}

func newScopeStack() *scopeStack {
	return &scopeStack{
		topByName:  make(map[string]*Symbol),
		visibility: VisibilityPublic,
	}
}

// enter opens a new container scope. Visibility resets to public at every
// class/module boundary; the previous value is saved on the frame and
// restored on exit.
func (s *scopeStack) enter(sym *Symbol, singleton bool) {
	s.frames = append(s.frames, &scopeFrame{
		symbol:    sym,
		saved:     s.visibility,
		byName:    make(map[string]*Symbol),
		singleton: singleton,
	})
	s.visibility = VisibilityPublic
}

// exit closes the innermost scope, restores the enclosing visibility, and
// attaches the completed symbol to its parent (or the top-level forest).
func (s *scopeStack) exit() *Symbol {
	frame := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.visibility = frame.saved
	s.add(frame.symbol)
	return frame.symbol
}

// add appends a completed symbol to the innermost open scope, or to the
// top-level forest when no scope is open.
func (s *scopeStack) add(sym *Symbol) {
	if len(s.frames) == 0 {
		s.top = append(s.top, sym)
		s.topByName[sym.Name] = sym
		return
	}
	frame := s.frames[len(s.frames)-1]
	frame.symbol.Children = append(frame.symbol.Children, sym)
	frame.byName[sym.Name] = sym
}

// setVisibility changes the ambient visibility for the remainder of the
// current scope.
func (s *scopeStack) setVisibility(v Visibility) {
	s.visibility = v
}

// correctVisibility overwrites the visibility of an already-collected member
// of the current scope. Forward references (members not yet visited) are
// skipped.
func (s *scopeStack) correctVisibility(name string, v Visibility) bool {
	var sym *Symbol
	if len(s.frames) == 0 {
		sym = s.topByName[name]
	} else {
		sym = s.frames[len(s.frames)-1].byName[name]
	}
	if sym == nil {
		return false
	}
	sym.Visibility = v
	return true
}

// inSingleton reports whether the innermost open scope is a singleton class
// body (`class << self`).
func (s *scopeStack) inSingleton() bool {
	if len(s.frames) == 0 {
		return false
	}
	return s.frames[len(s.frames)-1].singleton
}

func (s *scopeStack) depth() int {
	return len(s.frames)
}
