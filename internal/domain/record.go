package domain

import (
	"strings"
	"unicode/utf8"
)

// Record is one line of a source file. It is sent as a single datagram.
type Record string

// Bytes returns the UTF-8 payload of the record.
func (r Record) Bytes() []byte {
	return []byte(r)
}

// RecordSequence is the ordered, finite list of records of one file.
// Sessions keep their own cursor, so a sequence can be replayed any number of times.
type RecordSequence struct {
	records []Record
}

// NewRecordSequence creates a sequence from the given lines, preserving order.
func NewRecordSequence(lines []string) RecordSequence {
	records := make([]Record, len(lines))
	for i, l := range lines {
		records[i] = Record(l)
	}
	return RecordSequence{records: records}
}

// Len returns the number of records.
func (s RecordSequence) Len() int {
	return len(s.records)
}

// At returns the record at index i. It panics if i is out of range.
func (s RecordSequence) At(i int) Record {
	return s.records[i]
}

// Records returns a copy of all records in order.
func (s RecordSequence) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

const utf8BOM = "\ufeff"

// ParseRecords decodes text content into a RecordSequence.
//
// Lines are separated by "\n"; a trailing "\r" on each line is removed so both
// "\n" and "\r\n" files are accepted. The empty record produced by a final
// newline is dropped. A leading byte order mark is ignored.
// Returns ErrDecode if data is not valid UTF-8.
func ParseRecords(data []byte) (RecordSequence, error) {
	if !utf8.Valid(data) {
		return RecordSequence{}, ErrDecode
	}

	text := strings.TrimPrefix(string(data), utf8BOM)
	if text == "" {
		return RecordSequence{}, nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return NewRecordSequence(lines), nil
}
