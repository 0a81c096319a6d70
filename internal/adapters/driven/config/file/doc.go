// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the nlquery home directory.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - EnvConfigStore: environment overlay on top of another ConfigStore
//   - PromptStore: user-editable prompt templates with embedded defaults
//   - PromptWatcher: reloads the PromptStore when a template file changes
package file
