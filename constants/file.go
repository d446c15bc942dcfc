package constants

import "strings"

// AllowedImageTypes maps the accepted upload MIME types to a canonical
// extension. The extraction collaborator only accepts these formats.
var AllowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// MaxUploadBytes caps the size of a submitted spreadsheet image.
const MaxUploadBytes = 10 << 20

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MimeTypeForExt returns the upload MIME type for a file extension, or ""
// when the extension is not an accepted image format.
func MimeTypeForExt(ext string) string {
	switch NormalizeExt(ext) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}
