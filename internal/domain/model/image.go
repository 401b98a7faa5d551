package model

// Image is an object in the public image bucket.
type Image struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
