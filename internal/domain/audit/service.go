package audit

import "context"

// Recorder writes audit entries. It never reports failure to the caller.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}
