package model

import (
	"errors"
	"strings"
	"time"
)

// shareBase is the public site prefix blog share links point at.
const shareBase = "dtwin.evenbetter.in/blog/"

// ShareLinks holds per-network share URLs for a blog post. They are derived
// from the heading at write time; clients cannot supply them.
type ShareLinks struct {
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// Blog is a published or draft blog post.
type Blog struct {
	ID         string     `json:"id"          db:"id"`
	Image      string     `json:"image"       db:"image"`
	ImageAlt   string     `json:"image_alt"   db:"image_alt"`
	MainTag    string     `json:"main_tag"    db:"main_tag"`
	Date       string     `json:"date"        db:"date"`
	Heading    string     `json:"heading"     db:"heading"`
	Content    string     `json:"content"     db:"content"`
	Tags       []string   `json:"tags"        db:"tags"`
	ShareLinks ShareLinks `json:"share_links" db:"share_links"`
	CreatedAt  time.Time  `json:"created_at"  db:"created_at"`
}

// BlogWriteRequest represents parameters to create or update a Blog.
// ShareLinks are intentionally absent: they are server-derived.
type BlogWriteRequest struct {
	Image    string   `json:"image"`
	ImageAlt string   `json:"image_alt"`
	MainTag  string   `json:"main_tag"`
	Date     string   `json:"date"`
	Heading  string   `json:"heading"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
}

// Validate validates BlogWriteRequest.
func (r *BlogWriteRequest) Validate() error {
	if strings.TrimSpace(r.Heading) == "" {
		return errors.New("heading is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}

// DeriveShareLinks builds the share URLs for a heading. Spaces become dashes
// to form the public slug.
func DeriveShareLinks(heading string) ShareLinks {
	slug := shareBase + strings.ReplaceAll(heading, " ", "-")
	return ShareLinks{
		LinkedIn:  "https://www.linkedin.com/sharing/share-offsite/?url=" + slug,
		Twitter:   "https://twitter.com/intent/tweet?url=" + slug,
		Facebook:  "https://www.facebook.com/sharer/sharer.php?u=" + slug,
		Instagram: "https://www.instagram.com/" + slug,
	}
}

// BlogTop summarizes the blog landing page: the three most recent posts and
// the three most used tags and main tags.
type BlogTop struct {
	RecentPosts []Blog   `json:"recentPosts"`
	TopTags     []string `json:"topTags"`
	TopMainTags []string `json:"topMainTags"`
}
