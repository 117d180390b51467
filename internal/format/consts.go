// Package format houses low-level decoders for the trophy progress file
// (TROPUSR.DAT). The goal is to keep the parsing focused and independent from
// the public API so higher-level packages can orchestrate the data in a more
// ergonomic form. Every multi-byte integer in the file is big-endian.
package format

// Magic is the four-byte value at offset 0 of every progress file.
const Magic uint32 = 0x818F54AD

const (
	// FileHeaderSize is the fixed size of the file preamble.
	//
	//	Offset  Size  Description
	//	------  ----  -----------------------------------------
	//	 0x00    4    Magic (0x818F54AD)
	//	 0x04    4    Unknown
	//	 0x08    4    Table count
	//	 0x0C    4    Unknown
	//	 0x10   32    Reserved
	FileHeaderSize = 0x30

	// FileHeaderReservedSize is the trailing reserved block of the header.
	FileHeaderReservedSize = 32

	// TableHeaderSize is the size of one table directory slot. Slots follow
	// the file header back to back, TableCount times.
	//
	//	Offset  Size  Description
	//	 0x00    4    Table type (4 = grades, 6 = unlocks)
	//	 0x04    4    Entry size
	//	 0x08    4    Unknown
	//	 0x0C    4    Entry count
	//	 0x10    8    Absolute offset of the first entry
	//	 0x18    8    Reserved
	TableHeaderSize = 0x20

	// EntryHeaderSize is the common prefix of every typed record.
	//
	//	Offset  Size  Description
	//	 0x00    4    Record type
	//	 0x04    4    Record size
	//	 0x08    4    Trophy id
	//	 0x0C    4    Unknown
	EntryHeaderSize = 0x10
)

const (
	// TableTypeGrade tags the table holding per-trophy grade records.
	TableTypeGrade uint32 = 4
	// TableTypeUnlock tags the table holding per-trophy unlock state.
	TableTypeUnlock uint32 = 6
)

const (
	// GradeRecordFieldsSize is the logical payload of a grade record after the
	// entry header: id, grade, platinum link.
	GradeRecordFieldsSize = 12
	// GradeRecordMinSize is the smallest entry size a grade table may declare.
	GradeRecordMinSize = EntryHeaderSize + GradeRecordFieldsSize
	// GradeRecordSize is the entry size observed in real files (header + 12
	// bytes of fields + 68 bytes of padding).
	GradeRecordSize = 0x60

	// UnlockRecordFieldsSize covers id, state, two unknown words and the two
	// timestamps that follow the entry header.
	UnlockRecordFieldsSize = 32
	// UnlockRecordReservedSize is the reserved tail of an unlock record.
	UnlockRecordReservedSize = 64
	// UnlockRecordMinSize is the smallest entry size an unlock table may declare.
	UnlockRecordMinSize = EntryHeaderSize + UnlockRecordFieldsSize
	// UnlockRecordSize is the full entry size observed in real files.
	UnlockRecordSize = UnlockRecordMinSize + UnlockRecordReservedSize
)

// NoPlatinumLink is the platinum link value stored for trophies that do not
// count towards the set's platinum (-1 as a signed 32-bit value).
const NoPlatinumLink uint32 = 0xFFFFFFFF
