package domain

// OutputFormat selects the recognition instruction prompt and the shape of
// the clipboard payload. The set is closed; each value maps to exactly one
// prompt.
type OutputFormat string

const (
	FormatText        OutputFormat = "text"
	FormatMarkdown    OutputFormat = "markdown"
	FormatLatexNote   OutputFormat = "latex-note"
	FormatLatexNoteMD OutputFormat = "latex-note-md"
	FormatLatexFull   OutputFormat = "latex-fulltex"
	FormatStructured  OutputFormat = "structured"
)

// ValidFormat reports whether f is a member of the closed format enum.
func ValidFormat(f OutputFormat) bool {
	switch f {
	case FormatText, FormatMarkdown, FormatLatexNote, FormatLatexNoteMD, FormatLatexFull, FormatStructured:
		return true
	}
	return false
}

// ImageType represents the capture image encodings the cropper accepts.
type ImageType string

const (
	ImageTypePNG ImageType = "png"
	ImageTypeJPG ImageType = "jpg"
)

// AllowedImageTypes maps ImageType to its MIME content type.
var AllowedImageTypes = map[ImageType]string{
	ImageTypePNG: "image/png",
	ImageTypeJPG: "image/jpeg",
}

// AllowedImageContentTypes maps MIME content types back to ImageType.
var AllowedImageContentTypes = map[string]ImageType{
	"image/png":  ImageTypePNG,
	"image/jpeg": ImageTypeJPG,
}
