package mindtile

import "embed"

// EmbeddedAssets contains static assets shipped with the app:
// styles.css, favicon.svg. They are registered before the disk static
// routes, so a deployment's own static dir supplies everything else.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
