package evidence

import (
	"context"
)

// Service ingests evidence uploads and flips the monthly cycle's upload
// flags. Rows with unknown employee codes are skipped, not fatal.
type Service interface {
	ReplaceMonth(ctx context.Context, req UploadRequest) (UploadResult, error)
}
