package chat

// MaxTabs bounds how many conversations are tracked at once. Opening a new
// conversation beyond capacity evicts the oldest-opened tab, discarding its
// log.
const MaxTabs = 4

// Tab is one open conversation reference.
type Tab struct {
	Key     string
	Title   string
	Kind    ConvKind
	PeerID  int64
	GroupID int64
}

// Tabs is the bounded multi-conversation set. Insertion order is opening
// order and never changes on activation; eviction is FIFO. The active key is
// always a member of the set or empty.
type Tabs struct {
	open   []Tab
	active string
}

func NewTabs() *Tabs {
	return &Tabs{}
}

// Open tracks the conversation and activates it. An already-tracked key is
// only activated; its position in opening order is untouched. Returns the
// evicted tab, if capacity forced one out.
func (t *Tabs) Open(tab Tab) *Tab {
	if t.Contains(tab.Key) {
		t.active = tab.Key
		return nil
	}
	var evicted *Tab
	if len(t.open) >= MaxTabs {
		old := t.open[0]
		evicted = &old
		t.open = append(t.open[:0], t.open[1:]...)
		if t.active == old.Key {
			t.active = ""
		}
	}
	t.open = append(t.open, tab)
	t.active = tab.Key
	return evicted
}

// Activate moves focus to an already-open tab.
func (t *Tabs) Activate(key string) bool {
	if !t.Contains(key) {
		return false
	}
	t.active = key
	return true
}

// Close removes the tab. Closing the active tab activates the tab
// immediately preceding it in the remaining set (or the new first tab when
// it was leftmost), or clears the active conversation when none remain.
// Closing a non-active tab never changes the active conversation.
func (t *Tabs) Close(key string) bool {
	idx := -1
	for i, tab := range t.open {
		if tab.Key == key {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	wasActive := t.active == key
	t.open = append(t.open[:idx], t.open[idx+1:]...)
	if !wasActive {
		return true
	}
	if len(t.open) == 0 {
		t.active = ""
		return true
	}
	next := idx - 1
	if next < 0 {
		next = 0
	}
	t.active = t.open[next].Key
	return true
}

func (t *Tabs) Contains(key string) bool {
	for _, tab := range t.open {
		if tab.Key == key {
			return true
		}
	}
	return false
}

func (t *Tabs) ActiveKey() string {
	return t.active
}

// Active returns the active tab, or nil when no conversation is selected.
func (t *Tabs) Active() *Tab {
	for i := range t.open {
		if t.open[i].Key == t.active {
			return &t.open[i]
		}
	}
	return nil
}

// List returns the open tabs in opening order.
func (t *Tabs) List() []Tab {
	return t.open
}

func (t *Tabs) Len() int {
	return len(t.open)
}

// Reset clears all tabs (logout).
func (t *Tabs) Reset() {
	t.open = nil
	t.active = ""
}
