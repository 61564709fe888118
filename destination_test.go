package rtfdoc

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A \pict's hex bytes may be wrapped in their own sub-group (some writers
// do this); the Image must still commit once, when the \pict group itself
// closes, not when the inner sub-group does.
func TestParsePictureWithNestedSubgroupCommitsOnce(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	hexStr := hex.EncodeToString(payload)
	src := `{\rtf1{\pict\picw10\pich10{` + hexStr + `}}}`
	doc := parse(t, src)
	require.Len(t, doc.Elements, 1)
	img, ok := doc.Elements[0].(*Image)
	require.True(t, ok)
	assert.Equal(t, payload, img.Bytes)
	assert.Equal(t, 10, img.Width)
}

func TestIgnorableGroupSkipsUnrecognizedDestinationOnly(t *testing.T) {
	// \generator is not in recognizedDestinationWords, so the \*-marked
	// group is skipped; \fonttbl is recognized, so a \*-marked \fonttbl
	// (the conventional way of making it skippable-but-known) still has
	// its entries parsed.
	doc := parse(t, `{\rtf1{\*\generator Acme Writer}{\*\fonttbl{\f0 Arial;}}}`)
	assert.Equal(t, "Arial", doc.Fonts[0].Name)
}
