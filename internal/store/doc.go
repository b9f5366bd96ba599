// Package store resolves qualified schema names into parsed schemas and
// caches them by name. A miss maps the name onto a definition file, parses
// it, and when the parser reports a reference to a type that is not loaded
// yet, resolves that dependency first and retries. Store is not safe for
// concurrent use; callers that share one must serialize access.
package store
