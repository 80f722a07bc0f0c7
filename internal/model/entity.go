package model

// LinkedEntity is a recognized mention resolved against the knowledge base.
// Label and URL are empty when no candidate was found for the mention.
type LinkedEntity struct {
	Mention string `json:"mention"`         // Raw text span as recognized
	Label   string `json:"label,omitempty"` // Canonical knowledge-base label
	URL     string `json:"url,omitempty"`   // Canonical article URL
}

// Linked reports whether the mention was resolved to a canonical entry
func (e LinkedEntity) Linked() bool {
	return e.Label != ""
}

// EntityInfo is the knowledge-base record fetched for a candidate identifier
type EntityInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Claims      int    `json:"claims"`    // Number of distinct claim properties
	Sitelinks   int    `json:"sitelinks"` // Number of encyclopedic sitelinks
	URL         string `json:"url"`       // English article URL, if any
}
