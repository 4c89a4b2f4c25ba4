// Package assets bundles static files shipped with the binary.
package assets

import _ "embed"

// ExamplePNG is the demo image attached by the /image chat command
// and by image queries that do not name a file.
//
//go:embed example.png
var ExamplePNG []byte

// ExampleMIME is the media type of ExamplePNG
const ExampleMIME = "image/png"
