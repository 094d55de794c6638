package roster_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lrocha/leetboard/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxSize int
		want    []string
		wantErr string
	}{
		{
			name:    "one per line",
			input:   "alice\nbob\ncarol\n",
			maxSize: 10,
			want:    []string{"alice", "bob", "carol"},
		},
		{
			name:    "blank lines and whitespace dropped",
			input:   "  alice  \n\n\tbob\n   \n",
			maxSize: 10,
			want:    []string{"alice", "bob"},
		},
		{
			name:    "no trailing newline",
			input:   "alice\nbob",
			maxSize: 10,
			want:    []string{"alice", "bob"},
		},
		{
			name:    "empty input",
			input:   "\n\n",
			maxSize: 10,
			wantErr: "no usernames found",
		},
		{
			name:    "over the cap",
			input:   "a\nb\nc\n",
			maxSize: 2,
			wantErr: "cannot exceed 2",
		},
		{
			name:    "blank lines do not count against the cap",
			input:   "a\n\n\nb\n",
			maxSize: 2,
			want:    []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := roster.Parse(strings.NewReader(tt.input), tt.maxSize)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxSize int
		want    []string
		wantErr string
	}{
		{
			name:    "comma separated",
			input:   "alice,bob,carol",
			maxSize: 10,
			want:    []string{"alice", "bob", "carol"},
		},
		{
			name:    "spaces around commas",
			input:   " alice , bob ",
			maxSize: 10,
			want:    []string{"alice", "bob"},
		},
		{
			name:    "stray commas dropped",
			input:   ",alice,,bob,",
			maxSize: 10,
			want:    []string{"alice", "bob"},
		},
		{
			name:    "only commas",
			input:   ",,,",
			maxSize: 10,
			wantErr: "no usernames found",
		},
		{
			name:    "over the cap",
			input:   "a,b,c",
			maxSize: 2,
			wantErr: "cannot exceed 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := roster.ParseList(tt.input, tt.maxSize)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_DefaultCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < roster.DefaultMaxBatch+1; i++ {
		sb.WriteString("user\n")
	}

	_, err := roster.Parse(strings.NewReader(sb.String()), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot exceed 100")
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "usernames.txt")
	require.NoError(t, os.WriteFile(path, []byte("alice\nbob\n"), 0o644))

	got, err := roster.FromFile(path, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, got)

	_, err = roster.FromFile(filepath.Join(dir, "missing.txt"), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open usernames file")
}
