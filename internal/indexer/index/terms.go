package index

// TermID is a stable handle for an interned term. Handles are only
// meaningful to the index that issued them and may be recycled once no
// document references the term.
type TermID uint32

// termTable interns term text. Each distinct (document, term) pair holds one
// reference; the slot is recycled when the count drops to zero. Not safe for
// concurrent use; MemoryIndex guards it.
type termTable struct {
	ids   map[string]TermID
	texts []string
	refs  []int
	free  []TermID
}

func newTermTable() termTable {
	return termTable{ids: make(map[string]TermID)}
}

func (t *termTable) intern(text string) TermID {
	if id, ok := t.ids[text]; ok {
		t.refs[id]++
		return id
	}
	var id TermID
	if n := len(t.free); n > 0 {
		id = t.free[n-1]
		t.free = t.free[:n-1]
		t.texts[id] = text
		t.refs[id] = 1
	} else {
		id = TermID(len(t.texts))
		t.texts = append(t.texts, text)
		t.refs = append(t.refs, 1)
	}
	t.ids[text] = id
	return id
}

func (t *termTable) lookup(text string) (TermID, bool) {
	id, ok := t.ids[text]
	return id, ok
}

func (t *termTable) text(id TermID) string {
	return t.texts[id]
}

func (t *termTable) release(id TermID) {
	t.refs[id]--
	if t.refs[id] > 0 {
		return
	}
	delete(t.ids, t.texts[id])
	t.texts[id] = ""
	t.free = append(t.free, id)
}

// live returns the number of terms referenced by at least one document.
func (t *termTable) live() int {
	return len(t.ids)
}
