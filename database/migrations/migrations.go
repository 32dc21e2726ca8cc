// Package migrations holds the schema migrations. Each file registers its
// migrations from init(); cmd/linqlab imports this package for the side
// effect.
package migrations
