package domain

// PageImage is one rasterized document page, ready to be sent as model input.
type PageImage struct {
	Number   int    `json:"number"` // 1-based page number in the source document
	MIMEType string `json:"mimeType"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Data     []byte `json:"-"`
}
