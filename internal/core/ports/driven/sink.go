package driven

import "context"

// OutputSink persists a finished archive.
type OutputSink interface {
	// Save stores data under filename and returns where it ended up.
	Save(ctx context.Context, filename string, data []byte) (string, error)
}
