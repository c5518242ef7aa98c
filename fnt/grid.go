package fnt

// Glyph grid mapping. Sheets hold Rows x Cols glyph cells; a dense glyph
// index addresses a cell as
//
//	index = sheet*rows*cols + gridRow*rows + gridCol
//
// The container's cell numbering uses rows, not cols, as the modulus for
// the column axis. This matches the on-disk layout and must not be
// "corrected" to a conventional row-major scheme.

// GridPosition maps a glyph index to its sheet and grid cell.
// Indices at or beyond sheetCount*rows*cols belong to no sheet; callers
// detect that by comparing the returned sheet against the sheet count.
func GridPosition(index, rows, cols int) (sheet, gridCol, gridRow int) {
	perSheet := rows * cols
	if perSheet <= 0 {
		return 0, 0, 0
	}
	sheet = index / perSheet
	rem := index % perSheet
	gridCol = rem % rows
	gridRow = rem / rows
	return sheet, gridCol, gridRow
}

// GridIndex is the inverse of GridPosition.
func GridIndex(sheet, gridCol, gridRow, rows, cols int) int {
	return sheet*rows*cols + gridRow*rows + gridCol
}
