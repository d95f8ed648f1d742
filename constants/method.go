package constants

// ExtractionMethod tags where a page's text came from.
type ExtractionMethod string

const (
	// MethodLayer means the text embedded by the PDF producer was used.
	MethodLayer ExtractionMethod = "layer"
	// MethodOCR means the page was rasterized and recognized.
	MethodOCR ExtractionMethod = "ocr"
)

func (m ExtractionMethod) String() string { return string(m) }
