// Package dotfiles reads and writes the dotfile manager configuration kept
// in the user's home directory. Its types are the reference input for
// cmd/schema-gen.
package dotfiles

// FileMapping links a file in the dotfiles directory to its target location.
type FileMapping struct {
	// Source is the path inside the dotfiles directory.
	Source string `json:"source"`

	// Target is where the file is linked to.
	Target string `json:"target"`
}

// GitRemote is the git remote the dotfiles directory is synchronised with.
type GitRemote struct {
	// URL of the remote repository.
	URL string `json:"url,omitempty"`

	// Branch to push and pull.
	Branch string `json:"branch"`
}

// Config is the dotfile manager configuration.
type Config struct {
	// Schema points editors at the JSON schema of this file.
	Schema string `json:"$schema,omitempty"`

	// DotfilesDir is the directory holding the managed dotfiles.
	DotfilesDir string `json:"dotfilesDir" jsonschema:"format=uri"`

	// Files lists the managed file mappings.
	Files []FileMapping `json:"files"`

	// Remote is the optional git remote.
	Remote *GitRemote `json:"remote,omitempty"`

	// Editor to use for opening files.
	Editor string `json:"editor,omitempty" jsonschema:"example=code,example=sublime,example=vim"`

	// Initialized reports whether the dotfiles directory has been set up.
	Initialized bool `json:"initialized"`
}

// DotfilesConfig is the root document of the dotfile manager configuration file.
type DotfilesConfig struct {
	Config
}
