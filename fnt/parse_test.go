package fnt

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/rashevskyv/bffnt-tools/internal/fixture"
)

func TestParseCafeHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	c, err := Parse(fixture.CafeFont())
	if err != nil {
		t.Fatal(err)
	}
	if c.Signature != SigFFNT {
		t.Errorf("expected FFNT signature, got %s", c.Signature)
	}
	if c.LittleEndian() {
		t.Error("expected big-endian layout")
	}
	if c.Platform != PlatformCafe {
		t.Errorf("expected platform Cafe, got %s", c.Platform)
	}
	if c.Version != 0x03000000 {
		t.Errorf("unexpected version 0x%08X", c.Version)
	}
	if len(c.Warnings()) != 0 {
		t.Errorf("expected no warnings, got %v", c.Warnings())
	}
}

func TestParseCafeSections(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	c, err := Parse(fixture.CafeFont())
	if err != nil {
		t.Fatal(err)
	}
	if c.Info.Height != 14 || c.Info.Width != 12 || c.Info.Ascent != 11 {
		t.Errorf("unexpected metrics %d/%d/%d", c.Info.Height, c.Info.Width, c.Info.Ascent)
	}
	if c.Info.OldCtrLayout {
		t.Error("Cafe container must use the modern field order")
	}
	if c.Layout.SheetCount != fixture.CafeSheetCount {
		t.Fatalf("expected %d sheets, got %d", fixture.CafeSheetCount, c.Layout.SheetCount)
	}
	if len(c.Sheets) != fixture.CafeSheetCount {
		t.Fatalf("expected %d sheet slices, got %d", fixture.CafeSheetCount, len(c.Sheets))
	}
	for i, sheet := range c.Sheets {
		if len(sheet) != fixture.CafeSheetSize {
			t.Errorf("sheet %d has %d bytes, expected %d", i, len(sheet), fixture.CafeSheetSize)
		}
	}
	if c.Widths.Len() != 18 {
		t.Errorf("expected 18 width entries, got %d", c.Widths.Len())
	}
	if len(c.CMap.Blocks()) != 3 {
		t.Errorf("expected 3 mapping blocks, got %d", len(c.CMap.Blocks()))
	}
}

func TestParseNXPlatform(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	c, err := Parse(fixture.NXFont())
	if err != nil {
		t.Fatal(err)
	}
	if !c.LittleEndian() {
		t.Error("expected little-endian layout")
	}
	if c.Platform != PlatformNX {
		t.Errorf("expected platform NX, got %s", c.Platform)
	}
	if !c.WideCodepoints() {
		t.Error("NX containers use 32-bit code fields")
	}
	if !c.CMap.Wide() {
		t.Error("mapping chain did not pick up the wide layout")
	}
}

func TestParseLegacyCtrFieldOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	c, err := Parse(fixture.LegacyCtrFont())
	if err != nil {
		t.Fatal(err)
	}
	if c.Platform != PlatformCtr {
		t.Errorf("expected platform Ctr, got %s", c.Platform)
	}
	if !c.Info.OldCtrLayout {
		t.Fatal("expected the legacy field order")
	}
	if c.Info.Height != 13 || c.Info.Width != 11 || c.Info.Ascent != 10 {
		t.Errorf("legacy metrics misread: %d/%d/%d", c.Info.Height, c.Info.Width, c.Info.Ascent)
	}
	if c.Info.LineFeed != 15 {
		t.Errorf("legacy line feed misread: %d", c.Info.LineFeed)
	}
	if c.Info.Encoding != EncodingShiftJIS {
		t.Errorf("expected Shift-JIS encoding, got %s", c.Info.Encoding)
	}
}

func TestPlatformDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	cases := []struct {
		sig     Tag
		little  bool
		version uint32
		want    Platform
	}{
		{SigRFNT, false, 0x0104, PlatformWii},
		{SigTNFR, true, 0x0104, PlatformWii},
		{SigRFNA, false, 0x0104, PlatformWii},
		{SigCFNT, true, 0x03000000, PlatformCtr},
		{SigFFNT, false, 0x03000000, PlatformCafe},
		{SigFFNT, true, 0x03000000, PlatformCtr},
		{SigFFNT, true, NXVersionThreshold, PlatformNX},
		{SigFFNT, true, 0x04020000, PlatformNX},
	}
	for _, tc := range cases {
		if got := derivePlatform(tc.sig, tc.little, tc.version); got != tc.want {
			t.Errorf("%s little=%v version=0x%X: expected %s, got %s",
				tc.sig, tc.little, tc.version, tc.want, got)
		}
	}
}

func TestParseRejectsUnknownSignature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	data := fixture.CafeFont()
	copy(data[0:4], "XXXX")
	_, err := Parse(data)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected a FormatError, got %v", err)
	}
}

func TestParseRejectsTruncatedBuffer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	data := fixture.CafeFont()
	if _, err := Parse(data[:10]); err == nil {
		t.Error("expected an error for a truncated header")
	}
	// cut in the middle of the sheet data
	if _, err := Parse(data[:200]); err == nil {
		t.Error("expected an error for a truncated section")
	}
}

func TestParseRejectsSectionSizeOverrun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	data := fixture.CafeFont()
	// inflate the FINF section size beyond the buffer end
	binary.BigEndian.PutUint32(data[24:], uint32(len(data)))
	_, err := Parse(data)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected a FormatError, got %v", err)
	}
	if ferr.Section != TagFINF {
		t.Errorf("expected the error to name FINF, got %s", ferr.Section)
	}
}

func TestParseMissingFontInfo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	data := fixture.CafeFont()
	copy(data[20:24], "XINF") // mask the FINF tag
	_, err := Parse(data)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected a FormatError, got %v", err)
	}
}
