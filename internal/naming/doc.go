// Package naming maps qualified schema names onto relative definition file
// paths and back. Every function is pure: nothing here touches the
// filesystem, so callers decide whether a computed path actually exists.
package naming
