package cube

// Releaser is a GPU resource that can be freed.
type Releaser interface {
	Release()
}

// Scope collects resources as they are acquired and frees them together.
// Resources are released in reverse order of acquisition, so a vertex array
// goes before the buffers it references and a program before its shaders.
//
// GL objects can only be deleted on the thread that owns the context, so
// Release must be called from there.
type Scope struct {
	held []Releaser
}

// Add records r for release and returns it.
func (sc *Scope) Add(r Releaser) Releaser {
	sc.held = append(sc.held, r)
	return r
}

func (sc *Scope) Len() int {
	return len(sc.held)
}

// Release frees everything added so far. The scope can be reused afterwards.
func (sc *Scope) Release() {
	for i := len(sc.held) - 1; i >= 0; i-- {
		sc.held[i].Release()
	}
	sc.held = nil
}
