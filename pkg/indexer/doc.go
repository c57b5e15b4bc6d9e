// Package indexer turns a flat catalog of selectable options into the
// grouped, searchable, alphabetically indexed list behind a picker sheet.
//
// The package is a leaf: it renders nothing, loads nothing and owns no
// navigation state. Callers supply the catalog once and a query per
// keystroke; every call recomputes the result from scratch.
//
// # Pipeline
//
//	catalog ──► filter (folded substring) ──► stable sort ──► partition by heading
//	                                                              │
//	                                                              ▼
//	                                                  jump index (heading → position)
//
// # Usage
//
//	idx := indexer.New(options)
//	res := idx.Query("ad")
//	for _, s := range res.Sections {
//	    fmt.Println(s.Heading, len(s.Members))
//	}
//	if pos, ok := indexer.ResolveJump(res.JumpIndex, "Z"); ok {
//	    scrollTo(pos)
//	}
//
// # Thread Safety
//
// FilterAndGroup and ResolveJump are pure. An Indexer never mutates its
// catalog after construction, so it is safe for concurrent use.
package indexer
