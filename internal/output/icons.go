package output

import "github.com/temirov/dirtree/internal/utils"

const (
	folderIcon       = "📁"
	documentIcon     = "📄"
	imageIcon        = "🖼️"
	iconNameSeparate = " "
)

// fileIconsByExtension maps lower-cased extensions to the icon used in text listings.
// Extensions not listed fall back to documentIcon.
var fileIconsByExtension = map[string]string{
	"js":   documentIcon,
	"jsx":  documentIcon,
	"ts":   documentIcon,
	"tsx":  documentIcon,
	"html": documentIcon,
	"css":  documentIcon,
	"scss": documentIcon,
	"json": documentIcon,
	"md":   documentIcon,
	"txt":  documentIcon,
	"pdf":  documentIcon,
	"png":  imageIcon,
	"jpg":  imageIcon,
	"jpeg": imageIcon,
	"gif":  imageIcon,
	"svg":  imageIcon,
}

// FileIcon returns the listing icon for a file name.
func FileIcon(fileName string) string {
	if icon, known := fileIconsByExtension[utils.FileExtension(fileName)]; known {
		return icon
	}
	return documentIcon
}

// FolderIcon returns the listing icon for folders.
func FolderIcon() string {
	return folderIcon
}
