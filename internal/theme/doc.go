// Package theme resolves the light/dark/black display mode from the user's
// preference and the OS appearance, applies it to native chrome and keeps a
// derived color palette. Palettes are libadwaita-style @define-color CSS
// sheets, embedded by default and overridable from ~/.config/wxui/palettes/.
package theme
