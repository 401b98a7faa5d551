package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SectionName identifies an independently editable unit of website content.
type SectionName string

const (
	SectionHeader                SectionName = "header"
	SectionHero                  SectionName = "hero"
	SectionSupportedIntegrations SectionName = "supported_integrations"
	SectionFeaturesOne           SectionName = "features_one"
	SectionLongFeatures          SectionName = "long_features"
	SectionDropdownFeatures      SectionName = "dropdown_features"
	SectionWhyUs                 SectionName = "why_us"
	SectionNews                  SectionName = "news"
	SectionCallToAction          SectionName = "call_to_action"
	SectionFooter                SectionName = "footer"
)

// KnownSections returns the fixed set of section names the marketing site
// renders, in display order.
func KnownSections() []SectionName {
	return []SectionName{
		SectionHeader,
		SectionHero,
		SectionSupportedIntegrations,
		SectionFeaturesOne,
		SectionLongFeatures,
		SectionDropdownFeatures,
		SectionWhyUs,
		SectionNews,
		SectionCallToAction,
		SectionFooter,
	}
}

// Known reports whether the section name is one of the fixed set.
func (n SectionName) Known() bool {
	switch n {
	case SectionHeader, SectionHero, SectionSupportedIntegrations,
		SectionFeaturesOne, SectionLongFeatures, SectionDropdownFeatures,
		SectionWhyUs, SectionNews, SectionCallToAction, SectionFooter:
		return true
	default:
		return false
	}
}

// ParseSectionName normalizes a section name and reports whether it is known.
// Unknown names are still returned so future sections can round-trip through
// the generic content variant.
func ParseSectionName(value string) (SectionName, bool) {
	n := SectionName(strings.ToLower(strings.TrimSpace(value)))
	return n, n.Known()
}

// Section is a row of website content: a named section and its JSON payload.
type Section struct {
	ID        string          `json:"id"         db:"id"`
	Name      SectionName     `json:"section"    db:"section"`
	Content   json.RawMessage `json:"content"    db:"content"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Typed per-section schemas. Each known section has an explicit shape;
// unrecognized sections fall back to GenericContent.

// HeaderContent is the site navigation header.
type HeaderContent struct {
	Logo      string   `json:"logo"`
	Menus     []string `json:"menus"`
	Button    string   `json:"button"`
	ButtonURL string   `json:"button_url"`
}

// HeroContent is the landing hero block.
type HeroContent struct {
	Heading    string            `json:"heading"`
	Details    string            `json:"details"`
	Buttons    []string          `json:"buttons"`
	ButtonURLs []string          `json:"button_url"`
	Images     map[string]string `json:"images"`
}

// SupportedIntegrationsContent is the partner-logo strip.
type SupportedIntegrationsContent struct {
	Description string   `json:"description"`
	Logos       []string `json:"logos"`
}

// FeatureList is a heading plus bullet points, reused by several sections.
type FeatureList struct {
	Heading      string   `json:"heading"`
	BulletPoints []string `json:"bullet_points"`
}

// FeaturesOneContent is the first feature band.
type FeaturesOneContent struct {
	TopSection    FeatureList       `json:"top_section"`
	SecondSection FeatureList       `json:"second_section"`
	Images        map[string]string `json:"images"`
}

// FeatureCard is one card in the long-features band.
type FeatureCard struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// LongFeaturesContent is the scrolling feature-card band.
type LongFeaturesContent struct {
	MainHeading string        `json:"main_heading"`
	Cards       []FeatureCard `json:"cards"`
}

// DropdownItem is one entry in the dropdown-features columns.
type DropdownItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DropdownFeaturesContent is the two-column expandable feature list.
type DropdownFeaturesContent struct {
	Left  []DropdownItem    `json:"left"`
	Right map[string]string `json:"right"`
}

// Stat is a single headline figure in the why-us band.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// WhyUsFirstSection pairs an image with headline stats.
type WhyUsFirstSection struct {
	Image string `json:"image"`
	Stats []Stat `json:"stats"`
}

// WhyUsContent is the social-proof band.
type WhyUsContent struct {
	FirstSection  WhyUsFirstSection `json:"first_section"`
	SecondSection FeatureList       `json:"second_section"`
}

// NewsContent is the newsletter/press band.
type NewsContent struct {
	Heading string `json:"heading"`
}

// CallToActionContent is the closing CTA band.
type CallToActionContent struct {
	Mockup    string   `json:"mockup"`
	Heading   string   `json:"heading"`
	Paragraph string   `json:"paragraph"`
	Buttons   []string `json:"buttons"`
}

// FooterContent is the site footer.
type FooterContent struct {
	SocialLinks map[string]string `json:"social_links"`
}

// GenericContent is the fallback shape for sections this build does not know
// about yet. It preserves the payload untouched.
type GenericContent map[string]json.RawMessage

// SectionContent is the decoded, typed form of a section payload. Exactly one
// variant field is non-nil, selected by Name.
type SectionContent struct {
	Name SectionName

	Header                *HeaderContent
	Hero                  *HeroContent
	SupportedIntegrations *SupportedIntegrationsContent
	FeaturesOne           *FeaturesOneContent
	LongFeatures          *LongFeaturesContent
	DropdownFeatures      *DropdownFeaturesContent
	WhyUs                 *WhyUsContent
	News                  *NewsContent
	CallToAction          *CallToActionContent
	Footer                *FooterContent
	Generic               GenericContent
}

// DecodeSectionContent decodes raw into the schema for the named section.
// Known sections are parsed into their explicit shape; unknown sections land
// in the generic map variant. A payload that is not a JSON object fails.
func DecodeSectionContent(name SectionName, raw json.RawMessage) (SectionContent, error) {
	sc := SectionContent{Name: name}

	decode := func(dst any) error {
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("decode %s content: %w", name, err)
		}
		return nil
	}

	switch name {
	case SectionHeader:
		sc.Header = &HeaderContent{}
		return sc, decode(sc.Header)
	case SectionHero:
		sc.Hero = &HeroContent{}
		return sc, decode(sc.Hero)
	case SectionSupportedIntegrations:
		sc.SupportedIntegrations = &SupportedIntegrationsContent{}
		return sc, decode(sc.SupportedIntegrations)
	case SectionFeaturesOne:
		sc.FeaturesOne = &FeaturesOneContent{}
		return sc, decode(sc.FeaturesOne)
	case SectionLongFeatures:
		sc.LongFeatures = &LongFeaturesContent{}
		return sc, decode(sc.LongFeatures)
	case SectionDropdownFeatures:
		sc.DropdownFeatures = &DropdownFeaturesContent{}
		return sc, decode(sc.DropdownFeatures)
	case SectionWhyUs:
		sc.WhyUs = &WhyUsContent{}
		return sc, decode(sc.WhyUs)
	case SectionNews:
		sc.News = &NewsContent{}
		return sc, decode(sc.News)
	case SectionCallToAction:
		sc.CallToAction = &CallToActionContent{}
		return sc, decode(sc.CallToAction)
	case SectionFooter:
		sc.Footer = &FooterContent{}
		return sc, decode(sc.Footer)
	default:
		sc.Generic = GenericContent{}
		return sc, decode(&sc.Generic)
	}
}

// UpdateSectionRequest carries the replacement payload for a section.
type UpdateSectionRequest struct {
	Content json.RawMessage `json:"content"`
}

// Validate validates UpdateSectionRequest against the named section's schema.
func (r *UpdateSectionRequest) Validate(name SectionName) error {
	if len(r.Content) == 0 {
		return fmt.Errorf("content is required")
	}
	_, err := DecodeSectionContent(name, r.Content)
	return err
}

// CreateSectionRequest carries parameters to add a new section.
type CreateSectionRequest struct {
	Section string          `json:"section"`
	Content json.RawMessage `json:"content"`
}

// Validate validates CreateSectionRequest.
func (r *CreateSectionRequest) Validate() error {
	name, _ := ParseSectionName(r.Section)
	if name == "" {
		return fmt.Errorf("section is required")
	}
	r.Section = string(name)
	if len(r.Content) == 0 {
		return fmt.Errorf("content is required")
	}
	_, err := DecodeSectionContent(name, r.Content)
	return err
}
