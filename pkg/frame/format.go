package frame

import (
	"bytes"
	"fmt"
	"strconv"
	"text/tabwriter"
)

// HeadRows is the number of rows String prints.
const HeadRows = 10

// String renders the first HeadRows rows of the frame as a table.
func (f *Frame) String() string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Frame %d x %d\n", f.NumRows(), f.NumCols())
	for i, n := range f.names {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, n)
	}
	fmt.Fprintln(w)

	rows := min(f.NumRows(), HeadRows)
	for r := int64(0); r < rows; r++ {
		for i, v := range f.vecs {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, FormatCell(v, r))
		}
		fmt.Fprintln(w)
	}
	if f.NumRows() > rows {
		fmt.Fprintf(w, "... %d more rows\n", f.NumRows()-rows)
	}

	_ = w.Flush()
	return buf.String()
}

// FormatCell renders a single cell: NA for missing values, the level for categorical cells.
func FormatCell(v *Vec, row int64) string {
	if v.IsNA(row) {
		return "NA"
	}
	if l, ok := v.Label(row); ok {
		return l
	}
	return strconv.FormatFloat(v.At(row), 'g', -1, 64)
}
