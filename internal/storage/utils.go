package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// HLSPrefix is the object-store prefix for transcoded bundles
const HLSPrefix = "uploads/hls"

// UploadsPrefix is the object-store prefix for raw uploads
const UploadsPrefix = "uploads/files"

// ContentTypeForKey infers a content type from the object key's extension
func ContentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".m3u8":
		return "application/x-mpegURL"
	case ".ts":
		return "video/MP2T"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// BaseName derives an asset base name from the uploaded file name: extension
// stripped, path separators and spaces sanitized, a short unique suffix added
// so concurrent uploads of the same file name never share a key prefix.
func BaseName(fileName string) string {
	name := path.Base(fileName)
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" {
		name = "upload"
	}

	suffix := strings.Split(uuid.New().String(), "-")[0]
	return name + "-" + suffix
}

// BundleKey builds the object key for one file of an HLS bundle
func BundleKey(baseName, fileName string) string {
	return HLSPrefix + "/" + baseName + "/" + fileName
}

// RawKey builds the object key for an untranscoded upload
func RawKey(fileName string) string {
	return UploadsPrefix + "/" + fileName
}
