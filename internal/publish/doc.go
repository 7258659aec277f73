// Package publish uploads generated route documents to S3-compatible storage.
//
// Clients that load their route tree at runtime fetch the published object
// instead of a document bundled at build time.
//
// # Usage
//
//	client, err := publish.NewS3Client(cfg.Publish, publish.EnvCredentials())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p := publish.NewS3Publisher(client, cfg.Publish.Bucket)
//	receipt, err := p.Publish(ctx, cfg.Publish.Key, result.Document)
package publish
