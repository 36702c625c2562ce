// Package blog is the core library behind the personal blog and portfolio
// site: the post and contact-message domain model, the Service that the HTTP
// layers drive, and the Repository/BlobStore interfaces its pluggable
// backends implement (in-memory, PostgreSQL, filesystem, S3).
//
// Basic usage:
//
//	svc, err := blog.New(
//	    blog.WithRepository(memory.New()),
//	    blog.WithBlobStore("memory", memorystorage.New()),
//	)
package blog
