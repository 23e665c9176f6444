package history

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Key prefixes for the run archive
const (
	runRecordPrefix = "diagrun"
	runDatePrefix   = "diagrund"
)

// makeRunKey generates the primary key for a run record.
func makeRunKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runRecordPrefix, id))
}

// makeRunDateKey generates a composite key for the start-time index.
// Format: prefix:timestamp:id
func makeRunDateKey(startedAt time.Time, id string) []byte {
	prefix := runDatePrefix + ":"
	buf := make([]byte, len(prefix)+8+len(id))
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(startedAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], id)
	return buf
}
