package assign

// Assignment is a bijective record-key to person-ID map: forward and reverse
// indexes are kept in sync so no person is ever held by two records.
type Assignment struct {
	forward map[string]int64
	reverse map[int64]string
}

func newAssignment() *Assignment {
	return &Assignment{
		forward: make(map[string]int64),
		reverse: make(map[int64]string),
	}
}

// set maps key to personID, first removing any assignment the person holds
// elsewhere and any person the key currently holds.
func (a *Assignment) set(key string, personID int64) {
	if prior, ok := a.reverse[personID]; ok {
		delete(a.forward, prior)
	}
	if prev, ok := a.forward[key]; ok {
		delete(a.reverse, prev)
	}
	a.forward[key] = personID
	a.reverse[personID] = key
}

// clear removes the assignment for key, if any.
func (a *Assignment) clear(key string) {
	if personID, ok := a.forward[key]; ok {
		delete(a.reverse, personID)
		delete(a.forward, key)
	}
}

// PersonFor returns the person assigned to key.
func (a *Assignment) PersonFor(key string) (int64, bool) {
	id, ok := a.forward[key]
	return id, ok
}

// KeyFor returns the record key holding personID.
func (a *Assignment) KeyFor(personID int64) (string, bool) {
	key, ok := a.reverse[personID]
	return key, ok
}

// Len reports how many records are currently assigned.
func (a *Assignment) Len() int {
	return len(a.forward)
}
