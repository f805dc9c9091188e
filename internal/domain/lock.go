package domain

import "time"

// Lock marks an entry as reconciled. While a lock references an entry, none of its legs,
// date or description may change; deleting the lock is the only way back.
type Lock struct {
	UUID      string
	EntryID   int64
	CreatedAt time.Time
}

// LockedEntries indexes locks by the entry they protect.
func LockedEntries(locks []Lock) map[int64]Lock {
	m := make(map[int64]Lock, len(locks))
	for _, l := range locks {
		m[l.EntryID] = l
	}
	return m
}

// CheckMutable returns ErrImmutableEntry when entryID is locked.
func CheckMutable(locks []Lock, entryID int64) error {
	if _, ok := LockedEntries(locks)[entryID]; ok {
		return ErrImmutableEntry
	}
	return nil
}
