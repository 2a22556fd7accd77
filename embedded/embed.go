// Package embedded holds the resources compiled into the binary.
package embedded

import (
	_ "embed"
)

// Icon is the tray icon.
//
//go:embed icon.png
var Icon []byte

// IconError is the tray icon while a failed switch awaits retry or skip.
//
//go:embed icon_error.png
var IconError []byte
