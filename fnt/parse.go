package fnt

import (
	"encoding/binary"
)

// Layout constants of the container header. The byte-order marker always
// sits right after the signature; the position of version and header size
// differs between the RFNT family and the FFNT/CFNT layout.
const (
	bomOffset = 4

	ffntHeaderSizeOffset = 6
	ffntVersionOffset    = 8

	rfntVersionOffset    = 8
	rfntHeaderSizeOffset = 14

	minHeaderLen = 16
)

// bomLittleEndian is the byte-order marker value, read big-endian, that
// selects little-endian field layout. Any other value selects big-endian.
const bomLittleEndian = 0xFFFE

// Parse parses a font container from a byte slice. The container needs
// ongoing access to the byte data after Parse returns; the buffer is
// assumed immutable while the Container remains in use.
func Parse(data []byte) (*Container, error) {
	src := binarySegm(data)
	if len(src) < minHeaderLen {
		return nil, errFormat(0, 0, "buffer too small for a container header (%d bytes)", len(src))
	}
	c := &Container{data: src}
	if err := parseHeader(c, src); err != nil {
		return nil, err
	}
	tracer().Debugf("container %s, %s, version %#x, platform %s",
		c.Signature, orderName(c.Order), c.Version, c.Platform)

	wc := &warningCollector{}
	sections, err := scanSections(src, c.Order, int(c.HeaderSize), wc)
	if err != nil {
		return nil, err
	}

	finfOff, ok := findSection(sections, TagFINF)
	if !ok {
		return nil, errFormat(TagFINF, -1, "mandatory section missing")
	}
	if c.Info, err = parseFontInfo(src, c.Order, finfOff, c.Platform, c.Version); err != nil {
		return nil, err
	}

	tglpOff := c.Info.TGLPOffset
	if tglpOff == 0 {
		if tglpOff, ok = findSection(sections, TagTGLP); !ok {
			return nil, errFormat(TagTGLP, -1, "section missing and FINF carries no pointer")
		}
	}
	if c.Layout, err = parseSheetLayout(src, c.Order, tglpOff); err != nil {
		return nil, err
	}
	if c.Sheets, err = extractSheets(src, c.Layout); err != nil {
		return nil, err
	}

	cwdhOff := c.Info.CWDHOffset
	if cwdhOff == 0 {
		if cwdhOff, ok = findSection(sections, TagCWDH); !ok {
			return nil, errFormat(TagCWDH, -1, "section missing and FINF carries no pointer")
		}
	}
	if c.Widths, err = parseWidthChain(src, c.Order, cwdhOff); err != nil {
		return nil, err
	}

	cmapOff := c.Info.CMAPOffset
	if cmapOff == 0 {
		if cmapOff, ok = findSection(sections, TagCMAP); !ok {
			return nil, errFormat(TagCMAP, -1, "section missing and FINF carries no pointer")
		}
	}
	if c.CMap, err = parseCodeChain(src, c.Order, cmapOff, c.WideCodepoints(), wc); err != nil {
		return nil, err
	}

	for _, s := range sections {
		switch s.Tag {
		case TagFINF, TagTGLP, TagCWDH, TagCMAP:
		default:
			c.Unknown = append(c.Unknown, s)
		}
	}
	c.warnings = wc.warnings
	return c, nil
}

func orderName(order binary.ByteOrder) string {
	if order == binary.LittleEndian {
		return "LE"
	}
	return "BE"
}

// parseHeader identifies signature and byte order and derives the platform
// variant. The RFNT family keeps a 16-bit version at a different position
// than FFNT/CFNT.
func parseHeader(c *Container, src binarySegm) error {
	sig := MakeTag(src[0:4])
	switch sig {
	case SigFFNT, SigCFNT, SigRFNT, SigTNFR, SigRFNA:
	default:
		return errFormat(0, 0, "unknown signature %q", sig.String())
	}
	c.Signature = sig
	bom, err := src.u16(binary.BigEndian, bomOffset)
	if err != nil {
		return errFormat(0, bomOffset, "truncated header")
	}
	c.BOM = bom
	c.Order = binary.BigEndian
	if bom == bomLittleEndian {
		c.Order = binary.LittleEndian
	}
	if isRFNTFamily(sig) {
		v, err := src.u16(c.Order, rfntVersionOffset)
		if err != nil {
			return errFormat(0, rfntVersionOffset, "truncated header")
		}
		hs, err := src.u16(c.Order, rfntHeaderSizeOffset)
		if err != nil {
			return errFormat(0, rfntHeaderSizeOffset, "truncated header")
		}
		c.Version = uint32(v)
		c.HeaderSize = hs
	} else {
		hs, err := src.u16(c.Order, ffntHeaderSizeOffset)
		if err != nil {
			return errFormat(0, ffntHeaderSizeOffset, "truncated header")
		}
		v, err := src.u32(c.Order, ffntVersionOffset)
		if err != nil {
			return errFormat(0, ffntVersionOffset, "truncated header")
		}
		c.HeaderSize = hs
		c.Version = v
	}
	c.Platform = derivePlatform(sig, c.Order == binary.LittleEndian, c.Version)
	return nil
}

func isRFNTFamily(sig Tag) bool {
	return sig == SigRFNT || sig == SigTNFR || sig == SigRFNA
}

// derivePlatform resolves the platform variant from signature, byte order
// and version. Little-endian FFNT containers at or above the NX version
// threshold are NX, below it Ctr; big-endian FFNT is Cafe.
func derivePlatform(sig Tag, little bool, version uint32) Platform {
	if isRFNTFamily(sig) {
		return PlatformWii
	}
	if sig == SigCFNT {
		return PlatformCtr
	}
	if !little {
		return PlatformCafe
	}
	if version >= NXVersionThreshold {
		return PlatformNX
	}
	return PlatformCtr
}

// scanSections walks the tagged sections following the header. Each
// section carries a 4-byte tag and a declared size covering the whole
// section; unknown tags are skipped by that size. A declared size running
// past the buffer end is a FormatError.
func scanSections(src binarySegm, order binary.ByteOrder, start int, wc *warningCollector) ([]SectionInfo, error) {
	var sections []SectionInfo
	off := start
	for off+8 <= len(src) {
		rawTag, err := src.u32(binary.BigEndian, off)
		if err != nil {
			break
		}
		tag := Tag(rawTag)
		size, err := src.u32(order, off+4)
		if err != nil {
			return nil, errFormat(tag, off, "truncated section header")
		}
		if size < 8 {
			return nil, errFormat(tag, off, "declared section size %d too small", size)
		}
		end := off + int(size)
		if end > len(src) {
			return nil, errFormat(tag, off, "declared size %d runs past buffer end", size)
		}
		sections = append(sections, SectionInfo{Tag: tag, Offset: off, Size: size})
		tracer().Debugf("section %s @ 0x%X, %d bytes", tag, off, size)
		// Sheet data is carried inside the TGLP extent, so the declared
		// size skips it along with the section.
		off = end
	}
	if len(sections) == 0 {
		wc.addWarning(0, start, "no sections found after header")
	}
	return sections, nil
}

func findSection(sections []SectionInfo, tag Tag) (int, bool) {
	for _, s := range sections {
		if s.Tag == tag {
			return s.Offset, true
		}
	}
	return 0, false
}

// parseFontInfo decodes the FINF section. Two field layouts exist: the
// legacy Ctr order (versions before 0x04000000) interleaves the section
// pointers between the defaults and the cell metrics; the modern layout
// keeps all scalars up front.
func parseFontInfo(src binarySegm, order binary.ByteOrder, off int, platform Platform, version uint32) (*FontInfo, error) {
	if tag, err := src.u32(binary.BigEndian, off); err != nil || Tag(tag) != TagFINF {
		return nil, errFormat(TagFINF, off, "section not at expected position")
	}
	f := newFields(src, order, off+4)
	_ = f.u32() // section size
	fi := &FontInfo{
		SectionOffset: off,
		PayloadOffset: f.pos,
		OldCtrLayout:  platform == PlatformCtr && version < oldCtrVersionLimit,
	}
	var tglp, cwdh, cmap uint32
	if fi.OldCtrLayout {
		fi.Type = f.u8()
		fi.LineFeed = uint16(f.u8())
		fi.AlterIndex = f.u16()
		fi.DefaultLeft = f.u8()
		fi.DefaultGlyph = f.u8()
		fi.DefaultChar = f.u8()
		fi.Encoding = CharEncoding(f.u8())
		tglp = f.u32()
		cwdh = f.u32()
		cmap = f.u32()
		fi.Height = f.u8()
		fi.Width = f.u8()
		fi.Ascent = f.u8()
		f.skip(1)
	} else {
		fi.Type = f.u8()
		fi.Height = f.u8()
		fi.Width = f.u8()
		fi.Ascent = f.u8()
		fi.LineFeed = f.u16()
		fi.AlterIndex = f.u16()
		fi.DefaultLeft = f.u8()
		fi.DefaultGlyph = f.u8()
		fi.DefaultChar = f.u8()
		fi.Encoding = CharEncoding(f.u8())
		tglp = f.u32()
		cwdh = f.u32()
		cmap = f.u32()
	}
	if f.err != nil {
		return nil, errFormat(TagFINF, off, "truncated section")
	}
	fi.TGLPOffset = debias(tglp)
	fi.CWDHOffset = debias(cwdh)
	fi.CMAPOffset = debias(cmap)
	return fi, nil
}

// parseSheetLayout decodes the TGLP section.
func parseSheetLayout(src binarySegm, order binary.ByteOrder, off int) (*SheetLayout, error) {
	if tag, err := src.u32(binary.BigEndian, off); err != nil || Tag(tag) != TagTGLP {
		return nil, errFormat(TagTGLP, off, "section not at expected position")
	}
	f := newFields(src, order, off+4)
	_ = f.u32() // section size
	l := &SheetLayout{
		SectionOffset: off,
		PayloadOffset: f.pos,
	}
	l.CellWidth = f.u8()
	l.CellHeight = f.u8()
	l.SheetCount = f.u8()
	l.MaxCharWidth = f.u8()
	l.SheetSize = f.u32()
	l.Baseline = f.u16()
	l.Format = f.u16()
	l.Rows = f.u16()
	l.Cols = f.u16()
	l.SheetWidth = f.u16()
	l.SheetHeight = f.u16()
	l.DataOffset = f.u32()
	if f.err != nil {
		return nil, errFormat(TagTGLP, off, "truncated section")
	}
	return l, nil
}

// extractSheets slices the raw per-sheet bytes out of the buffer. The
// slices are views; decoding never mutates them.
func extractSheets(src binarySegm, l *SheetLayout) ([][]byte, error) {
	if l.SheetCount == 0 {
		return nil, nil
	}
	if l.DataOffset == 0 || int(l.DataOffset) >= len(src) {
		return nil, errFormat(TagTGLP, l.SectionOffset, "invalid sheet data offset %#x", l.DataOffset)
	}
	sheets := make([][]byte, 0, l.SheetCount)
	pos := int(l.DataOffset)
	for i := 0; i < int(l.SheetCount); i++ {
		end := pos + int(l.SheetSize)
		if end > len(src) {
			return nil, errFormat(TagTGLP, pos, "sheet %d runs past buffer end", i)
		}
		sheets = append(sheets, src[pos:end])
		pos = end
	}
	return sheets, nil
}
