package dom

// Event is a synthetic UI event.
type Event struct {
	Type     string
	Key      string
	Code     string
	Bubbles  bool
	Composed bool
}

// Listener handles an event delivered to target and bubbled to the element
// the listener was registered on.
type Listener func(ev Event, target *Element)

// NewEvent returns a bubbling, composed event of the given type.
func NewEvent(typ string) Event {
	return Event{Type: typ, Bubbles: true, Composed: true}
}

// KeyEvent returns a bubbling keyboard event for key.
func KeyEvent(typ, key string) Event {
	code := ""
	if key != "" {
		code = "Key" + upperFirst(key)
	}
	if key == "Enter" {
		code = "Enter"
	}
	return Event{Type: typ, Key: key, Code: code, Bubbles: true, Composed: true}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}

// AddEventListener registers fn for events of type typ on el, including
// events bubbling up from descendants.
func (e *Element) AddEventListener(typ string, fn Listener) {
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[typ] = append(e.listeners[typ], fn)
}

// Dispatch delivers ev to e and, for bubbling events, to its ancestors.
// Composed events continue from a shadow root to its host.
func (e *Element) Dispatch(ev Event) {
	e.doc.record(e, ev)
	for cur := e; cur != nil; {
		for _, fn := range cur.listeners[ev.Type] {
			fn(ev, e)
		}
		if !ev.Bubbles {
			return
		}
		next := cur.Parent()
		if next == nil && ev.Composed {
			if root := cur.Root(); root.IsShadow() {
				next = root.Host()
			}
		}
		cur = next
	}
}
