package scorer

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/sells-group/investor-profile/internal/model"
)

// Fingerprint returns a stable hash of a response map. Choice order does
// not affect the result. Returns "" if the map cannot be encoded.
func Fingerprint(responses model.ResponseMap) string {
	canonical := responses.Clone()
	for id, a := range canonical {
		if a.Kind == model.AnswerChoices {
			slices.Sort(a.Choices)
			canonical[id] = a
		}
	}
	data, err := json.Marshal(canonical)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:16]) // 32 hex chars
}
