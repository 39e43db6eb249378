// Package lg resolves and renders localized response templates.
//
// Resources follow the <base>[.<locale>].<ext> naming convention, e.g.
// main.lg, main.en-US.lg. A resource declares imports and templates:
//
//	> comment
//	[import](common.lg)
//
//	# welcome(name)
//	- ${greeting()}, ${name}!
//
// Expressions inside ${...} are evaluated with gval; calling an identifier
// that is neither a registered helper nor gval's own date() renders the
// template of that name, looked up in the current resource first and then
// through its imports. Imports resolve against the caller's locale fallback
// chain (exact locale, language, neutral) unless the import path names a
// locale itself.
package lg
