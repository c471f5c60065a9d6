package types

// PlacePhotos is the response of the place photo lookup.
type PlacePhotos struct {
	Place  string   `json:"place"`
	Images []string `json:"images"`
}

// DestinationCover is the response of the destination cover lookup.
type DestinationCover struct {
	Location string `json:"location"`
	Kind     string `json:"kind"`
	Image    string `json:"image"`
}

// ErrorResponse documents the body written by the error middleware.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
