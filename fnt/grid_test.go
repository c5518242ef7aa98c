package fnt

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGridPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	// rows is the modulus for the column axis: 130 % (16*13) = 130,
	// 130 % 16 = 2, 130 / 16 = 8
	sheet, col, row := GridPosition(130, 16, 13)
	if sheet != 0 || col != 2 || row != 8 {
		t.Errorf("expected (0,2,8), got (%d,%d,%d)", sheet, col, row)
	}
	sheet, col, row = GridPosition(16*13, 16, 13)
	if sheet != 1 || col != 0 || row != 0 {
		t.Errorf("expected (1,0,0), got (%d,%d,%d)", sheet, col, row)
	}
}

func TestGridRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	const rows, cols = 10, 8
	for index := 0; index < 3*rows*cols; index++ {
		sheet, col, row := GridPosition(index, rows, cols)
		if col >= rows || row >= cols {
			t.Fatalf("index %d: cell (%d,%d) out of the %dx%d grid", index, col, row, rows, cols)
		}
		if back := GridIndex(sheet, col, row, rows, cols); back != index {
			t.Fatalf("index %d round-trips to %d", index, back)
		}
	}
}

func TestGridDegenerateGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.container")
	defer teardown()
	//
	if sheet, col, row := GridPosition(5, 0, 7); sheet != 0 || col != 0 || row != 0 {
		t.Errorf("zero rows must not divide by zero, got (%d,%d,%d)", sheet, col, row)
	}
}
