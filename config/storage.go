package config

// StorageConfig contains object-storage bucket configuration for image uploads.
// The bucket is a hosted HTTP object store; uploads, listings, and deletes go
// through its REST API and public URLs are served from the same base.
type StorageConfig struct {
	// BaseURL is the storage service base URL (e.g. "https://xyz.supabase.co").
	BaseURL string `env:"URL"`

	// APIKey is the service key sent as a bearer token on every storage call.
	APIKey string `env:"KEY"`

	// Bucket is the bucket images are stored in.
	Bucket string `env:"BUCKET" envDefault:"cms-images"`
}
