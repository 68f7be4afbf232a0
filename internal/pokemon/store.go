// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon

import "context"

// # Remote Catalog Access

// Lister pages through the remote catalog.
type Lister interface {

	/*
		List returns the references in the window [offset, offset+limit).

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []Reference: References in catalog order
		  - error: Transport or upstream failures
	*/
	List(context context.Context, limit, offset int) ([]Reference, error)
}

// Resolver resolves the full detail of a single entry by name.
type Resolver interface {
	Resolve(context context.Context, name string) (*Detail, error)
}

// Catalog is the full remote collaborator.
type Catalog interface {
	Lister
	Resolver
}
