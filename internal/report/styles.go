package report

import (
	"github.com/xuri/excelize/v2"
)

// Summary sheet number formats.
const (
	numberFmt  = "#,##0.00;[Red]-#,##0.00"
	percentFmt = "0.00%"
	monthFmt   = "mmm-yyyy"
)

type edge int

const (
	edgeNone edge = iota
	edgeThin
	edgeDouble
)

// cellStyle is the accumulated formatting of one summary cell. Formatting
// calls merge into it; styles are only created in the workbook on flush.
type cellStyle struct {
	Bold      bool
	Italic    bool
	Underline bool
	Size      float64
	NumFmt    string
	Bottom    edge
	Left      bool
}

// styleSheet collects per-cell formatting and writes it in one pass, so a
// cell can pick up a border from one block and a number format from another.
type styleSheet struct {
	f        *excelize.File
	sheet    string
	fontName string
	fontSize float64

	cells map[[2]int]cellStyle
	order [][2]int
	ids   map[cellStyle]int
}

func newStyleSheet(f *excelize.File, sheet string, opts Options) *styleSheet {
	return &styleSheet{
		f:        f,
		sheet:    sheet,
		fontName: opts.FontName,
		fontSize: opts.FontSize,
		cells:    make(map[[2]int]cellStyle),
		ids:      make(map[cellStyle]int),
	}
}

// apply merges fn into every cell of the rectangle [c1,c2] x [r1,r2].
func (s *styleSheet) apply(c1, r1, c2, r2 int, fn func(*cellStyle)) {
	for r := r1; r <= r2; r++ {
		for c := c1; c <= c2; c++ {
			k := [2]int{c, r}
			cs, ok := s.cells[k]
			if !ok {
				s.order = append(s.order, k)
			}
			fn(&cs)
			s.cells[k] = cs
		}
	}
}

func (s *styleSheet) row(c1, c2, r int, fn func(*cellStyle)) {
	s.apply(c1, r, c2, r, fn)
}

func (s *styleSheet) flush() error {
	for _, k := range s.order {
		id, err := s.id(s.cells[k])
		if err != nil {
			return err
		}
		ref := cell(k[0], k[1])
		if err := s.f.SetCellStyle(s.sheet, ref, ref, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *styleSheet) id(cs cellStyle) (int, error) {
	if id, ok := s.ids[cs]; ok {
		return id, nil
	}

	size := s.fontSize
	if cs.Size > 0 {
		size = cs.Size
	}
	st := &excelize.Style{
		Font: &excelize.Font{
			Family: s.fontName,
			Size:   size,
			Bold:   cs.Bold,
			Italic: cs.Italic,
		},
	}
	if cs.Underline {
		st.Font.Underline = "single"
	}
	if cs.NumFmt != "" {
		st.CustomNumFmt = strPtr(cs.NumFmt)
	}
	switch cs.Bottom {
	case edgeThin:
		st.Border = append(st.Border, excelize.Border{Type: "bottom", Color: "000000", Style: 1})
	case edgeDouble:
		st.Border = append(st.Border, excelize.Border{Type: "bottom", Color: "000000", Style: 6})
	}
	if cs.Left {
		st.Border = append(st.Border, excelize.Border{Type: "left", Color: "000000", Style: 1})
	}

	id, err := s.f.NewStyle(st)
	if err != nil {
		return 0, err
	}
	s.ids[cs] = id
	return id, nil
}

func bold(cs *cellStyle)       { cs.Bold = true }
func italic(cs *cellStyle)     { cs.Italic = true }
func underline(cs *cellStyle)  { cs.Underline = true }
func bottomThin(cs *cellStyle) { cs.Bottom = edgeThin }
func leftEdge(cs *cellStyle)   { cs.Left = true }

func bottomDouble(cs *cellStyle) { cs.Bottom = edgeDouble }

func number(cs *cellStyle)  { cs.NumFmt = numberFmt }
func percent(cs *cellStyle) { cs.NumFmt = percentFmt }
func month(cs *cellStyle)   { cs.NumFmt = monthFmt }

// all combines formatting functions.
func all(fns ...func(*cellStyle)) func(*cellStyle) {
	return func(cs *cellStyle) {
		for _, fn := range fns {
			fn(cs)
		}
	}
}
