package export

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/postman_collection.json
var postmanSchema []byte

// ErrSchemaViolation is returned when a document does not match its schema.
var ErrSchemaViolation = errors.New("document does not match schema")

// ValidatePostman checks a rendered Postman collection against the subset
// of the v2.1 schema that consuming tools rely on.
func ValidatePostman(doc []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(postmanSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to validate collection: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(msgs, "; "))
}
