package fnt

import (
	"encoding/binary"
)

// Container represents one parsed binary font container. It keeps the
// original byte buffer (immutable after Parse) together with the decoded
// sections and the byte offsets recorded for later in-place patching.
type Container struct {
	Signature  Tag              // one of the three format families
	BOM        uint16           // byte-order marker as stored (read big-endian)
	Order      binary.ByteOrder // resolved byte order for all field reads
	Version    uint32           // format version (16 bit in the RFNT family)
	HeaderSize uint16
	Platform   Platform

	Info    *FontInfo
	Layout  *SheetLayout
	Widths  *WidthTable
	CMap    *CodeMap
	Sheets  [][]byte // raw per-sheet bytes, views into the container buffer
	Unknown []SectionInfo

	data     binarySegm
	warnings []Warning
}

// Bytes returns the original container bytes. Clients must treat the
// returned slice as read-only; the repacker works on its own copy.
func (c *Container) Bytes() []byte {
	return c.data
}

// LittleEndian reports whether container fields are little-endian.
func (c *Container) LittleEndian() bool {
	return c.Order == binary.LittleEndian
}

// Warnings returns all non-fatal issues encountered during parsing.
func (c *Container) Warnings() []Warning {
	if c.warnings == nil {
		return []Warning{}
	}
	return c.warnings
}

// WideCodepoints reports whether codepoint fields in CMAP blocks are
// 32 bit, which is the case on the NX platform only. The value is derived
// once from the header and consulted by all downstream parsers.
func (c *Container) WideCodepoints() bool {
	return c.Platform == PlatformNX
}

// SectionInfo records the extent of one top-level section as seen by the
// section scanner, including unrecognized sections we skip over.
type SectionInfo struct {
	Tag    Tag
	Offset int    // offset of the section tag
	Size   uint32 // declared section size, including the 8-byte header
}

// --- Platform --------------------------------------------------------------

// Platform is the platform variant a container was built for. It is
// derived from signature, byte order and version, and decides a number of
// field widths and layouts further down.
type Platform int

const (
	PlatformWii  Platform = iota // RFNT family
	PlatformCtr                  // CFNT, or little-endian FFNT below the NX version
	PlatformCafe                 // big-endian FFNT
	PlatformNX                   // little-endian FFNT, version >= NXVersionThreshold
)

// NXVersionThreshold is the first format version produced for the NX
// platform. Little-endian FFNT containers at or above it use 32-bit
// codepoint fields in CMAP blocks.
const NXVersionThreshold = 0x04010000

// oldCtrVersionLimit separates the legacy Ctr FINF field layout from the
// modern one.
const oldCtrVersionLimit = 0x04000000

func (p Platform) String() string {
	switch p {
	case PlatformWii:
		return "Wii"
	case PlatformCtr:
		return "Ctr"
	case PlatformCafe:
		return "Cafe"
	case PlatformNX:
		return "NX"
	}
	return "unknown"
}

// ParsePlatform is the inverse of Platform.String. It reports false for
// names naming no known platform.
func ParsePlatform(name string) (Platform, bool) {
	switch name {
	case "Wii":
		return PlatformWii, true
	case "Ctr":
		return PlatformCtr, true
	case "Cafe":
		return PlatformCafe, true
	case "NX":
		return PlatformNX, true
	}
	return 0, false
}

// --- Tag -------------------------------------------------------------------

// Tag is a 4-byte section identifier, e.g. 'FINF', stored as a big-endian
// integer regardless of the container's byte order.
type Tag uint32

// MakeTag creates a Tag from 4 bytes. If b is shorter or longer, it will be
// silently extended or cut as appropriate.
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(binary.BigEndian.Uint32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate.
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(binary.BigEndian.Uint32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// Section tags interpreted by this package.
var (
	TagFINF = T("FINF")
	TagTGLP = T("TGLP")
	TagCWDH = T("CWDH")
	TagCMAP = T("CMAP")
)

// Container signatures of the three format families.
var (
	SigFFNT = T("FFNT")
	SigCFNT = T("CFNT")
	SigRFNT = T("RFNT")
	SigTNFR = T("TNFR")
	SigRFNA = T("RFNA")
)

// --- FontInfo --------------------------------------------------------------

// FontInfo carries the scalar metrics of the FINF section plus the
// resolved offsets of the first TGLP/CWDH/CMAP sections. PayloadOffset and
// OldCtrLayout pin down the byte positions of the scalar fields, so the
// repacker can overwrite edited values in place.
type FontInfo struct {
	Type         uint8
	Height       uint8
	Width        uint8
	Ascent       uint8
	LineFeed     uint16 // stored as a single byte in the legacy Ctr layout
	AlterIndex   uint16 // glyph index substituted for unmapped codes
	DefaultLeft  uint8
	DefaultGlyph uint8
	DefaultChar  uint8
	Encoding     CharEncoding

	TGLPOffset int // resolved (de-biased) section offsets; 0 when absent
	CWDHOffset int
	CMAPOffset int

	SectionOffset int  // offset of the FINF tag
	PayloadOffset int  // offset of the first field after tag + size
	OldCtrLayout  bool // legacy Ctr field order
}

// --- SheetLayout -------------------------------------------------------------

// SheetLayout is the decoded TGLP section: glyph cell geometry, the sheet
// grid, and the location of the raw sheet data.
//
// Rows and Cols count grid cells per sheet. Note that the container's grid
// indexing uses Rows as the modulus for the column axis (see GridPosition);
// the field names follow the stored order, not a row-major convention.
type SheetLayout struct {
	CellWidth    uint8
	CellHeight   uint8
	SheetCount   uint8
	MaxCharWidth uint8
	SheetSize    uint32 // bytes per sheet
	Baseline     uint16
	Format       uint16 // texel format code
	Rows         uint16
	Cols         uint16
	SheetWidth   uint16 // pixels
	SheetHeight  uint16 // pixels
	DataOffset   uint32 // absolute offset of the first sheet's bytes

	SectionOffset int
	PayloadOffset int
}

// CellsPerSheet returns the number of glyph cells one sheet holds.
func (l *SheetLayout) CellsPerSheet() int {
	return int(l.Rows) * int(l.Cols)
}

// GlyphCapacity returns the total number of glyph cells over all sheets.
func (l *SheetLayout) GlyphCapacity() int {
	return l.CellsPerSheet() * int(l.SheetCount)
}
