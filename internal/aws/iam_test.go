package aws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePolicyDocument(t *testing.T) {
	encoded := "%7B%22Version%22%3A%222012-10-17%22%7D"
	assert.Equal(t, `{"Version":"2012-10-17"}`, decodePolicyDocument(encoded))
}

func TestDecodePolicyDocumentPassthrough(t *testing.T) {
	plain := `{"Version":"2012-10-17"}`
	assert.Equal(t, plain, decodePolicyDocument(plain))

	// Invalid escapes fall back to the raw document
	broken := "100%zz"
	assert.Equal(t, broken, decodePolicyDocument(broken))
}
