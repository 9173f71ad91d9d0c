package export

import "errors"

var (
	// ErrNoData indicates an export was requested for an empty row sequence.
	ErrNoData = errors.New("export: no data")

	// ErrFontDecode indicates the raster font could not be decoded.
	ErrFontDecode = errors.New("export: font decode failed")

	// ErrMalformedCSV indicates a delimited file that does not match the export layout.
	ErrMalformedCSV = errors.New("export: malformed csv")
)
