// Package console implements the interactive, localized catalog menu.
//
// The menu reads numbered choices line by line. It first asks for a language
// (skipped when a locale is configured), then loops over catalog actions until
// the user picks 0 or input ends.
//
// Messages come from YAML catalogs embedded under messages/. A key missing
// from the active locale falls back to English, then to the key itself.
// Service errors are printed by kind and never end the session.
package console
