package util

import (
	"path"
	"strings"

	"storeit/storage-api/model"
)

var extensionTypes = map[string]string{
	// Documents. Design formats count as documents too
	"pdf": model.TypeDocument, "doc": model.TypeDocument, "docx": model.TypeDocument,
	"txt": model.TypeDocument, "xls": model.TypeDocument, "xlsx": model.TypeDocument,
	"csv": model.TypeDocument, "rtf": model.TypeDocument, "ods": model.TypeDocument,
	"ppt": model.TypeDocument, "odp": model.TypeDocument, "md": model.TypeDocument,
	"html": model.TypeDocument, "htm": model.TypeDocument, "epub": model.TypeDocument,
	"pages": model.TypeDocument, "fig": model.TypeDocument, "psd": model.TypeDocument,
	"ai": model.TypeDocument, "indd": model.TypeDocument, "xd": model.TypeDocument,
	"sketch": model.TypeDocument, "afdesign": model.TypeDocument, "afphoto": model.TypeDocument,

	"jpg": model.TypeImage, "jpeg": model.TypeImage, "png": model.TypeImage,
	"gif": model.TypeImage, "bmp": model.TypeImage, "svg": model.TypeImage,
	"webp": model.TypeImage,

	"mp4": model.TypeVideo, "avi": model.TypeVideo, "mov": model.TypeVideo,
	"mkv": model.TypeVideo, "webm": model.TypeVideo,

	"mp3": model.TypeAudio, "wav": model.TypeAudio, "ogg": model.TypeAudio,
	"flac": model.TypeAudio,
}

// FileType classifies a file name into one of the type categories by its
// extension. Unknown or missing extensions classify as "other".
func FileType(name string) (fileType, extension string) {
	extension = strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if extension == "" {
		return model.TypeOther, ""
	}

	if t, ok := extensionTypes[extension]; ok {
		return t, extension
	}

	return model.TypeOther, extension
}

// CategoryTypes maps a browsing route segment to the file types it covers.
func CategoryTypes(segment string) []string {
	switch segment {
	case "documents":
		return []string{model.TypeDocument}
	case "images":
		return []string{model.TypeImage}
	case "media":
		return []string{model.TypeVideo, model.TypeAudio}
	case "others":
		return []string{model.TypeOther}
	default:
		return []string{model.TypeDocument}
	}
}

// FileIcon returns the icon asset path for a file. Extension-specific
// icons win over the per-type fallback.
func FileIcon(extension, fileType string) string {
	switch extension {
	case "pdf":
		return "/assets/icons/file-pdf.svg"
	case "doc":
		return "/assets/icons/file-doc.svg"
	case "docx":
		return "/assets/icons/file-docx.svg"
	case "csv":
		return "/assets/icons/file-csv.svg"
	case "txt":
		return "/assets/icons/file-txt.svg"
	case "xls", "xlsx":
		return "/assets/icons/file-document.svg"
	case "svg":
		return "/assets/icons/file-image.svg"
	case "mkv", "mov", "avi", "wmv", "mp4", "flv", "webm", "m4v", "3gp":
		return "/assets/icons/file-video.svg"
	case "mp3", "mpeg", "wav", "aac", "flac", "ogg", "wma", "m4a", "aiff", "alac":
		return "/assets/icons/file-audio.svg"
	}

	switch fileType {
	case model.TypeImage:
		return "/assets/icons/file-image.svg"
	case model.TypeDocument:
		return "/assets/icons/file-document.svg"
	case model.TypeVideo:
		return "/assets/icons/file-video.svg"
	case model.TypeAudio:
		return "/assets/icons/file-audio.svg"
	default:
		return "/assets/icons/file-other.svg"
	}
}
