// Package testutil builds synthetic trophy files for tests. The encoder here
// keeps its own copy of the on-disk layout so tests do not validate the
// decoders against themselves.
package testutil

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	magic           = 0x818F54AD
	fileHeaderSize  = 48
	tableHeaderSize = 32

	// GradeEntrySize and UnlockEntrySize are the record sizes real files use.
	GradeEntrySize  = 96
	UnlockEntrySize = 112

	// TicksEpoch is the raw timestamp of 1970-01-01T00:00:00Z.
	TicksEpoch uint64 = 62135596800000000
)

// Grade describes one type 4 record.
type Grade struct {
	ID    uint32
	Grade uint32
	Link  uint32
}

// Unlock describes one type 6 record.
type Unlock struct {
	ID    uint32
	State uint32
	TS1   uint64
	TS2   uint64
}

// Table is a raw table to place in the file. Body is written at Offset
// verbatim; Count and EntrySize are written to the directory as given, which
// lets tests declare tables that lie about their size.
type Table struct {
	Type      uint32
	EntrySize uint32
	Count     uint32
	Offset    uint64
	Body      []byte
}

// Progress assembles a TROPUSR.DAT image.
type Progress struct {
	Magic  uint32
	Tables []Table
}

// NewProgress returns a builder with the correct magic and no tables.
func NewProgress() *Progress {
	return &Progress{Magic: magic}
}

// AddGrades appends a grade table laid out right after the previous table.
func (p *Progress) AddGrades(recs ...Grade) *Progress {
	body := make([]byte, 0, len(recs)*GradeEntrySize)
	for _, r := range recs {
		body = append(body, GradeEntry(r, GradeEntrySize)...)
	}
	return p.add(4, GradeEntrySize, uint32(len(recs)), body)
}

// AddUnlocks appends an unlock table laid out right after the previous table.
func (p *Progress) AddUnlocks(recs ...Unlock) *Progress {
	body := make([]byte, 0, len(recs)*UnlockEntrySize)
	for _, r := range recs {
		body = append(body, UnlockEntry(r, UnlockEntrySize)...)
	}
	return p.add(6, UnlockEntrySize, uint32(len(recs)), body)
}

// AddRaw appends an arbitrary table laid out after the previous table.
func (p *Progress) AddRaw(typ, entrySize, count uint32, body []byte) *Progress {
	return p.add(typ, entrySize, count, body)
}

func (p *Progress) add(typ, size, count uint32, body []byte) *Progress {
	p.Tables = append(p.Tables, Table{Type: typ, EntrySize: size, Count: count, Body: body})
	return p
}

// Bytes lays the tables out after the directory (unless a table already has
// an explicit Offset) and returns the file image.
func (p *Progress) Bytes() []byte {
	next := uint64(fileHeaderSize + tableHeaderSize*len(p.Tables))
	size := next
	for i := range p.Tables {
		t := &p.Tables[i]
		if t.Offset == 0 {
			t.Offset = next
		}
		if end := t.Offset + uint64(len(t.Body)); end > size {
			size = end
		}
		next = t.Offset + uint64(len(t.Body))
	}

	out := make([]byte, size)
	binary.BigEndian.PutUint32(out[0:], p.Magic)
	binary.BigEndian.PutUint32(out[8:], uint32(len(p.Tables)))
	for i, t := range p.Tables {
		slot := out[fileHeaderSize+i*tableHeaderSize:]
		binary.BigEndian.PutUint32(slot[0:], t.Type)
		binary.BigEndian.PutUint32(slot[4:], t.EntrySize)
		binary.BigEndian.PutUint32(slot[12:], t.Count)
		binary.BigEndian.PutUint64(slot[16:], t.Offset)
		copy(out[t.Offset:], t.Body)
	}
	return out
}

// GradeEntry encodes one grade record padded to size bytes.
func GradeEntry(r Grade, size int) []byte {
	b := make([]byte, size)
	binary.BigEndian.PutUint32(b[0:], 4)
	binary.BigEndian.PutUint32(b[4:], uint32(size-16))
	binary.BigEndian.PutUint32(b[8:], r.ID)
	binary.BigEndian.PutUint32(b[16:], r.ID)
	binary.BigEndian.PutUint32(b[20:], r.Grade)
	binary.BigEndian.PutUint32(b[24:], r.Link)
	return b
}

// UnlockEntry encodes one unlock record padded to size bytes.
func UnlockEntry(r Unlock, size int) []byte {
	b := make([]byte, size)
	binary.BigEndian.PutUint32(b[0:], 6)
	binary.BigEndian.PutUint32(b[4:], uint32(size-16))
	binary.BigEndian.PutUint32(b[8:], r.ID)
	binary.BigEndian.PutUint32(b[16:], r.ID)
	binary.BigEndian.PutUint32(b[20:], r.State)
	binary.BigEndian.PutUint64(b[32:], r.TS1)
	binary.BigEndian.PutUint64(b[40:], r.TS2)
	return b
}

// Trophy describes one <trophy> element of a descriptor.
type Trophy struct {
	ID     int
	Hidden bool
	Type   string
	PID    int
	Name   string
	Detail string
}

// Conf describes a TROPCONF.SFM document.
type Conf struct {
	NpCommID      string
	Version       string
	ParentalLevel int
	Title         string
	Detail        string
	Trophies      []Trophy
}

// XML renders the descriptor document.
func (c Conf) XML() []byte {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<trophyconf version="1.0" policy="large">` + "\n")
	fmt.Fprintf(&sb, "<npcommid>%s</npcommid>\n", c.NpCommID)
	fmt.Fprintf(&sb, "<trophyset-version>%s</trophyset-version>\n", c.Version)
	fmt.Fprintf(&sb, "<parental-level license-area=\"default\">%d</parental-level>\n", c.ParentalLevel)
	fmt.Fprintf(&sb, "<title-name>%s</title-name>\n", c.Title)
	fmt.Fprintf(&sb, "<title-detail>%s</title-detail>\n", c.Detail)
	for _, t := range c.Trophies {
		hidden := "no"
		if t.Hidden {
			hidden = "yes"
		}
		fmt.Fprintf(&sb, "<trophy id=\"%03d\" hidden=\"%s\" ttype=\"%s\" pid=\"%d\">", t.ID, hidden, t.Type, t.PID)
		fmt.Fprintf(&sb, "<name>%s</name><detail>%s</detail></trophy>\n", t.Name, t.Detail)
	}
	sb.WriteString("</trophyconf>\n")
	return []byte(sb.String())
}
