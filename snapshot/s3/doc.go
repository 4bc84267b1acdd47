// Package s3 provides an S3 implementation of the snapshot.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", s3.WithPrefix("synleth/"))
//	if err != nil { ... }
//
//	results, err := fastsl.Find(ctx, oracle,
//	    fastsl.WithSnapshot(store, "ecoli-depth3"),
//	)
//
// # Features
//
//   - Atomic whole-object writes (snapshots are single small documents)
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
