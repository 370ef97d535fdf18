// Package entity contains the core business objects of the project.
package entity

// CatalogueType classifies a catalogue item by medium.
type CatalogueType string

const (
	// CatalogueTypeMovie indicates a movie catalogue item.
	CatalogueTypeMovie CatalogueType = "movie"
	// CatalogueTypeMusic indicates a music catalogue item.
	CatalogueTypeMusic CatalogueType = "music"
	// CatalogueTypePodcast indicates a podcast catalogue item.
	CatalogueTypePodcast CatalogueType = "podcast"
)

// String returns the string representation of the CatalogueType.
func (t CatalogueType) String() string {
	return string(t)
}

// IsValid checks if the CatalogueType is a recognized value.
func (t CatalogueType) IsValid() bool {
	switch t {
	case CatalogueTypeMovie, CatalogueTypeMusic, CatalogueTypePodcast:
		return true
	default:
		return false
	}
}

// CatalogueItem is a movie/music/podcast record produced by an external
// aggregation collaborator. The core never mutates it; it only copies its
// display fields into a FavouriteEntry at save time.
type CatalogueItem struct {
	ID          string        `json:"id"`
	Type        CatalogueType `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Status      string        `json:"status"`
}
