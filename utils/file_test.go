package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report-2026_v1.pdf", SanitizeFilename("report-2026_v1.pdf"))
	assert.Equal(t, "my_report_final_.pdf", SanitizeFilename("my report/final!.pdf"))
	assert.Equal(t, "b__k.pdf", SanitizeFilename("böök.pdf"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "exactly10!", TruncateString("exactly10!", 10))
	assert.Equal(t, "this is a ...", TruncateString("this is a longer string", 10))
}
