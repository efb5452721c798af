// Package rgit provides the plumbing of a minimal version-control
// repository: a content-addressable object store and a binary staging index.
//
// Content is stored as zlib-compressed "blob <size>\x00<content>" objects
// under objects/<2 hex>/<38 hex>, addressed by the SHA-1 of the framed bytes.
// The staging index records one entry per staged file with a stat snapshot,
// the content hash and the base name, followed by a SHA-1 of the whole file.
//
// Basic usage:
//
//	repo, _ := rgit.Init(".rgit")
//
//	// Store and stage files
//	staged, _ := repo.Add(ctx, "a.txt", "b.txt")
//	for _, s := range staged {
//	    fmt.Println(s.Hash, s.Path, s.New)
//	}
//
//	// Read content back
//	data, _ := repo.CatFile(ctx, staged[0].Hash)
//
//	// Inspect the index
//	entries, _ := repo.Entries()
//	if err := repo.Verify(); err != nil { ... }
//
// Every index mutation reads the index file, appends in memory and rewrites
// the file in full. Content already staged under any name is not staged
// again.
package rgit
