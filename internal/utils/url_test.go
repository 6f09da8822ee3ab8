package utils

import (
	"errors"
	"testing"

	"github.com/quantmind-br/blitzpack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractProjectID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "plain edit URL",
			url:  "https://stackblitz.com/edit/my-project",
			want: "my-project",
		},
		{
			name: "stops at query string",
			url:  "https://stackblitz.com/edit/vitejs-vite-abc123?file=src/main.ts",
			want: "vitejs-vite-abc123",
		},
		{
			name: "stops at fragment",
			url:  "https://stackblitz.com/edit/node-xyz#readme",
			want: "node-xyz",
		},
		{
			name: "stops at trailing slash",
			url:  "https://stackblitz.com/edit/angular-demo/",
			want: "angular-demo",
		},
		{
			name: "identifier with underscores and digits",
			url:  "https://stackblitz.com/edit/a_b-9",
			want: "a_b-9",
		},
		{
			name:    "missing marker",
			url:     "https://stackblitz.com/github/foo/bar",
			wantErr: true,
		},
		{
			name:    "empty segment after marker",
			url:     "https://stackblitz.com/edit/",
			wantErr: true,
		},
		{
			name:    "marker followed by query only",
			url:     "https://stackblitz.com/edit/?file=index.js",
			wantErr: true,
		},
		{
			name:    "empty string",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractProjectID(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidURL))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectIDOrURL(t *testing.T) {
	t.Run("bare identifier passes through", func(t *testing.T) {
		id, err := ProjectIDOrURL("vitejs-vite-abc123")
		require.NoError(t, err)
		assert.Equal(t, "vitejs-vite-abc123", id)
	})

	t.Run("editor URL is parsed", func(t *testing.T) {
		id, err := ProjectIDOrURL("https://stackblitz.com/edit/demo?file=a.ts")
		require.NoError(t, err)
		assert.Equal(t, "demo", id)
	})

	t.Run("URL without marker is rejected", func(t *testing.T) {
		_, err := ProjectIDOrURL("https://stackblitz.com/github/foo/bar")
		assert.ErrorIs(t, err, domain.ErrInvalidURL)
	})
}
