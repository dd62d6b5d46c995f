// Package category holds confect's named categories and the mapping between
// system paths and repository paths.
//
// A category groups system files under shared include, encrypt and exclude
// glob lists and owns one repository subtree rooted at its name:
//
//	/etc/nginx/nginx.conf  <->  nginx/etc/nginx/nginx.conf
//
// # Matching
//
// Exclude patterns always win. A path excluded by any exclude pattern never
// matches, whatever the include patterns say. Otherwise a path matches when
// an include glob matches it or an include entry equals it exactly. Globs
// use doublestar semantics: `*` stays within one path segment and `**`
// crosses segments. Malformed patterns never match.
//
// Directories are registered as `dir/**` (see NormalizePattern) so that every
// file beneath them matches.
//
// # Ambiguity
//
// FindForPath checks categories in name order and returns the first match.
// When several categories claim a path, which one wins is not part of the
// contract.
//
// # Persistence
//
// Categories are stored in .confect/categories.toml:
//
//	[categories.nginx]
//	description = "web server"
//	paths = ["/etc/nginx/**"]
//	encrypt = ["/etc/nginx/ssl/*.key"]
//	exclude = ["/etc/nginx/*.bak"]
package category
