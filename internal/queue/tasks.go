package queue

// TypeMediaCleanup removes orphaned audio blobs from the upload directory.
// A blob is orphaned when no video row references it: the upload wrote the
// file but the request failed before (or while) creating the record.
const TypeMediaCleanup = "media:cleanup"

type MediaCleanupPayload struct {
	MaxAgeHours int `json:"max_age_hours"`
}
