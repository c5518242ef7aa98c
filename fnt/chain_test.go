package fnt

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/rashevskyv/bffnt-tools/internal/fixture"
)

func TestDebias(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	if got := debias(0); got != 0 {
		t.Errorf("zero terminates the chain, got %d", got)
	}
	if got := debias(0x68); got != 0x60 {
		t.Errorf("stored 0x68 should resolve to 0x60, got 0x%X", got)
	}
}

func TestWalkChainDetectsCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	data := fixture.CafeFont()
	c, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	blocks := c.Widths.Blocks()
	// point the second block's next-offset back at the first block
	nextAt := blocks[1].Offset + widthBlockNextField
	binary.BigEndian.PutUint32(data[nextAt:], uint32(blocks[0].Offset)+chainOffsetBias)
	_, err = Parse(data)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected a FormatError for the cyclic chain, got %v", err)
	}
	if ferr.Section != TagCWDH {
		t.Errorf("expected the error to name CWDH, got %s", ferr.Section)
	}
}

func TestWalkChainRejectsWrongTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	data := fixture.CafeFont()
	c, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	blocks := c.Widths.Blocks()
	copy(data[blocks[1].Offset:], "HDWC")
	if _, err := Parse(data); err == nil {
		t.Error("expected an error for a chain link to a foreign tag")
	}
}
