package weather

// RecordList is a most-recent-first, deduplicated list with a fixed capacity.
// It is not safe for concurrent use; State guards it.
type RecordList struct {
	limit int
	items []WeatherRecord
}

// NewRecordList builds a list from previously persisted items, enforcing the
// capacity and the uniqueness of keys (first occurrence wins).
func NewRecordList(limit int, items []WeatherRecord) *RecordList {
	l := &RecordList{limit: limit}
	seen := make(map[RecordKey]bool, len(items))
	for _, it := range items {
		if seen[it.Key()] {
			continue
		}
		seen[it.Key()] = true
		l.items = append(l.items, it)
		if len(l.items) == limit {
			break
		}
	}
	return l
}

// Insert removes any entry sharing r's key, prepends r and drops the oldest
// entries beyond the capacity.
func (l *RecordList) Insert(r WeatherRecord) {
	out := make([]WeatherRecord, 0, len(l.items)+1)
	out = append(out, r)
	for _, it := range l.items {
		if it.Key() != r.Key() {
			out = append(out, it)
		}
	}
	if len(out) > l.limit {
		out = out[:l.limit]
	}
	l.items = out
}

// Remove deletes the entry with the given key. It reports whether one existed.
func (l *RecordList) Remove(key RecordKey) bool {
	for i, it := range l.items {
		if it.Key() == key {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the list.
func (l *RecordList) Clear() {
	l.items = nil
}

// Len returns the number of entries.
func (l *RecordList) Len() int {
	return len(l.items)
}

// Items returns a copy of the entries, most recent first.
func (l *RecordList) Items() []WeatherRecord {
	out := make([]WeatherRecord, len(l.items))
	copy(out, l.items)
	return out
}
