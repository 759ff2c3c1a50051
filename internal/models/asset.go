package models

import "time"

// AssetKind describes what a media asset contains
type AssetKind string

const (
	AssetKindRaw AssetKind = "raw"
	AssetKindHLS AssetKind = "hls"
)

// AssetStatus tracks the publication lifecycle of an asset
type AssetStatus string

const (
	// AssetStatusUploading means artifacts are being pushed to the object store
	AssetStatusUploading AssetStatus = "uploading"
	// AssetStatusPublished means every artifact is durably stored
	AssetStatusPublished AssetStatus = "published"
	// AssetStatusFallback means transcoding or publication failed and the
	// original upload is the servable asset
	AssetStatusFallback AssetStatus = "fallback"
)

// MediaAsset records one published artifact set. Republishing a lesson's
// video creates a new row; old rows become orphans (no garbage collection).
type MediaAsset struct {
	ID           int         `json:"id"`
	BaseName     string      `json:"baseName"`
	Kind         AssetKind   `json:"kind"`
	ObjectPrefix string      `json:"objectPrefix"`
	Status       AssetStatus `json:"status"`
	URL          string      `json:"url"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// UploadResult is what the ingestion pipeline returns to the upload handler
type UploadResult struct {
	URL   string `json:"url"`
	IsHLS bool   `json:"isHls"`
}

// UploadResponse is the upload endpoint payload
type UploadResponse struct {
	Success bool         `json:"success"`
	File    UploadedFile `json:"file"`
}

// UploadedFile describes the stored upload
type UploadedFile struct {
	URL      string `json:"url"`
	MimeType string `json:"mimetype"`
	IsHLS    bool   `json:"isHls"`
}
