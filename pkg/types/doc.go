// Package types defines the shared entities of fortunelog-dev: the EnvTable
// produced by the dotenv loader, the splash Overlay capability and its
// lifecycle states, the method-channel call and result types, and the
// configuration consumed by the CLI, together with their sentinel errors.
package types
