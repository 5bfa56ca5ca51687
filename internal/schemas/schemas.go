// Package schemas registers the types cfgbundle generates JSON schemas for.
package schemas

import (
	"github.com/woozymasta/cfgbundle/internal/config"
	"github.com/woozymasta/cfgbundle/internal/dotfiles"
	"github.com/woozymasta/cfgbundle/internal/schemagen"
)

// Register makes the build configuration and dotfiles configuration types
// available to schemagen.
func Register() {
	schemagen.Register(
		config.BuildConfig{},
		dotfiles.DotfilesConfig{},
		dotfiles.Config{},
		dotfiles.FileMapping{},
		dotfiles.GitRemote{},
	)
}
