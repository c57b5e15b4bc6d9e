// Package catalog loads the option lists that pickers index.
//
// A catalog file is YAML with a name, a display title and either a flat
// options list or a tree of named groups whose leaves are item labels:
//
//	name: brands
//	title: Brand
//	options:
//	  - id: bandId12323e12e
//	    label: Bayt-mahmoud
//
// Trees flatten into options whose ids join the slugged path
// ("women/footwear/boots") and whose descriptions carry the readable path,
// so every picker, hierarchical or not, runs through the same indexer.
//
// Catalogs are validated on load: ids and labels must be non-empty after
// trimming and ids must be unique. The indexer itself never sees a
// malformed catalog.
//
// A Watcher reloads catalog files into a Registry as they are saved. A save
// that fails validation leaves the previous catalog in place.
package catalog
