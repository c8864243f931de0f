package output

import "io"

// Print writes raw in format. For table and wide output, toTable converts
// raw into rows first; wide asks for the detailed columns.
func Print(w io.Writer, format Format, raw any, toTable func(wide bool) Data) error {
	formatter := NewFormatter(format)
	switch format {
	case FormatTable, FormatWide, "":
		return formatter.Format(w, toTable(format == FormatWide))
	}
	return formatter.Format(w, raw)
}

// Resolve validates an explicit format and falls back to DetectFormat when
// none was given.
func Resolve(explicit string) (Format, error) {
	format, err := ParseFormat(explicit)
	if err != nil {
		return "", err
	}
	if format == "" {
		format = DetectFormat("")
	}
	return format, nil
}
