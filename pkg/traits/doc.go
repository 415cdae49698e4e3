// Package traits defines the trait and representation data model for
// published content. A trait is a small, versioned, named schema describing
// one facet of a deliverable (frame range, color space, file locations); a
// representation is a named collection of traits keyed by trait ID.
package traits
