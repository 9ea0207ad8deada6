// Package expand turns loaded cases into the flat list of executable cases.
//
// A case without a "ddts" list yields one executable case named after its
// "desc". A case with a "ddts" list yields one executable case per row, in
// row order. Each row is overlaid on the case's "context" mapping (row keys
// win, including the row's own "desc") and the case is named
// "<case desc>-<row desc>":
//
//	desc: Create user              ->  Create user-admin   context: {role: admin, desc: admin}
//	ddts:                              Create user-guest   context: {role: guest, desc: guest}
//	  - {desc: admin, role: admin}
//	  - {desc: guest, role: guest}
//
// A missing "desc" is replaced by a freshly generated UUID, independently for
// every placeholder, so every case always has a name. Every output case is a
// deep copy: callers may mutate one without affecting another or the input.
//
// Malformed "ddts" data (not a list, or rows that are not mappings) is
// rejected with a *MalformedDdtsError instead of being expanded into
// something the author did not write.
package expand
