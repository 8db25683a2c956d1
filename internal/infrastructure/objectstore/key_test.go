package objectstore

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageKey(t *testing.T) {
	ownerID := uuid.New()
	at := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

	key := StorageKey(ownerID, "Q3 Report.csv", at)
	assert.Equal(t, fmt.Sprintf("files/%s/%d_q3-report.csv", ownerID, at.UnixMilli()), key)

	otherOwner := uuid.New()
	require.False(t, strings.HasPrefix(StorageKey(otherOwner, "a.txt", at), "files/"+ownerID.String()+"/"),
		"owner namespaces never overlap")

	// Same name uploaded twice never collides and sorts in upload order.
	k1 := StorageKey(ownerID, "a.txt", at)
	k2 := StorageKey(ownerID, "a.txt", at.Add(time.Millisecond))
	assert.NotEqual(t, k1, k2)
	assert.Less(t, k1, k2)
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"uppercase folded", "REPORT.PDF", "report.pdf"},
		{"spaces and underscores collapse", "my  summer__photos.jpg", "my-summer-photos.jpg"},
		{"inner dots collapse", "archive.v2.final.tar", "archive-v2-final.tar"},
		{"diacritics stripped", "résumé.pdf", "resume.pdf"},
		{"path traversal stripped", "../../etc/passwd", "passwd"},
		{"windows path stripped", `C:\Users\me\notes.txt`, "notes.txt"},
		{"windows reserved name escaped", "CON.txt", "_con.txt"},
		{"symbols dropped", "invoice#42 (final)!.pdf", "invoice42-final.pdf"},
		{"only symbols fall back", "☃☃☃.png", "file.png"},
		{"empty falls back", "", "file"},
		{"dot only falls back", ".", "file"},
		{"dotdot falls back", "..", "file"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestSanitizeFileName_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 3*maxBaseNameLen) + ".txt"
	got := SanitizeFileName(long)

	assert.LessOrEqual(t, len(got), maxBaseNameLen)
	assert.True(t, strings.HasSuffix(got, ".txt"), "extension survives the cap")
}
