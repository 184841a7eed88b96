package badger

import "encoding/binary"

// Key prefixes for different data types
const (
	indexEntryPrefix = "recdoc"
	indexEntrySeq    = "recdocseq"
	indexMetaKey     = "idxmeta"
)

// makeEntryKey generates a key for an index entry by sequence number.
// The sequence is written in BigEndian order so lexicographic iteration
// yields insertion order.
func makeEntryKey(seq uint64) []byte {
	prefix := indexEntryPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// entryKeyPrefix returns the iteration prefix covering all index entries.
func entryKeyPrefix() []byte {
	return []byte(indexEntryPrefix + ":")
}

// makeMetaKey generates the key for the index metadata record.
func makeMetaKey() []byte {
	return []byte(indexMetaKey)
}
