package views

// SiteConfig holds site-wide settings passed into every page component so
// nothing is hardcoded in templates.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}
