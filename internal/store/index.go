package store

import "maps"

// lineRange is the [start, end) byte range of one entry in the JSONL file,
// end including the trailing newline.
type lineRange struct {
	start int64
	end   int64
}

// fileIndex keeps in-memory byte-offset bookmarks per entry so Entry(n)
// is a single file.ReadAt.
type fileIndex struct {
	lines  []lineRange
	counts map[Kind]int
	lastAt int64
}

func newFileIndex() *fileIndex {
	return &fileIndex{counts: make(map[Kind]int)}
}

// onAppend updates the index when an Entry line has been appended.
// lineOffset is the byte offset of the first byte of the written line;
// lineLen is the total bytes written (including the trailing newline).
func (idx *fileIndex) onAppend(entry Entry, lineOffset, lineLen int64) {
	idx.lines = append(idx.lines, lineRange{start: lineOffset, end: lineOffset + lineLen})
	idx.counts[entry.Kind]++
	if entry.AtMS > idx.lastAt {
		idx.lastAt = entry.AtMS
	}
}

func (idx *fileIndex) countsCopy() map[Kind]int {
	return maps.Clone(idx.counts)
}
