//go:build !devauth

package handler

import "github.com/labstack/echo/v4"

// BackdoorEnabled reports whether this binary was built with the devauth tag.
const BackdoorEnabled = false

// RegisterBackdoor is a no-op in release builds.
func RegisterBackdoor(*echo.Group, CredentialIssuer, CookieSettings) {}
