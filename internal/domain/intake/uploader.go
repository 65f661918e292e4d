package intake

import "context"

// Uploader pushes raw attachment bytes to the storage/CDN service and
// returns the durable HTTPS URL of the stored asset.
type Uploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}
