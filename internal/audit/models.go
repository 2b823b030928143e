package audit

import (
	"time"

	"github.com/bolosign/bolosign/backend/go-services/internal/field"
)

// Record is one immutable record of a completed compositing pass. It stores
// the digests of the document before and after fields were baked in, plus a
// snapshot of the exact field list used. Records are append-only: there is
// no update or delete.
type Record struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	DocumentRef    string        `json:"documentRef" bson:"documentRef"`
	OriginalDigest string        `json:"originalDigest" bson:"originalDigest"`
	SignedDigest   string        `json:"signedDigest" bson:"signedDigest"`
	OutputLocation string        `json:"outputLocation" bson:"outputLocation"`
	Fields         []field.Field `json:"fields" bson:"fields"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
}
