package utils

import (
	"regexp"
	"testing"
)

func TestStorageKeySanitizesFilename(t *testing.T) {
	key := StorageKey("minha foto (1).jpg")

	// unix-millis prefix, then the name with every unsafe rune replaced
	if !regexp.MustCompile(`^\d+-minha_foto__1_\.jpg$`).MatchString(key) {
		t.Fatalf("unexpected key: %q", key)
	}
}

func TestStorageKeyKeepsSafeCharacters(t *testing.T) {
	key := StorageKey("IMG.1234.jpeg")
	if !regexp.MustCompile(`^\d+-IMG\.1234\.jpeg$`).MatchString(key) {
		t.Fatalf("unexpected key: %q", key)
	}
}

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		name   string
		url    string
		bucket string
		want   string
	}{
		{
			name:   "bucket segment",
			url:    "http://localhost:9000/fotos/1712345-festa.jpg",
			bucket: "fotos",
			want:   "1712345-festa.jpg",
		},
		{
			name:   "nested key",
			url:    "https://storage.example.com/v1/object/public/fotos/2024/festa.jpg",
			bucket: "fotos",
			want:   "2024/festa.jpg",
		},
		{
			name:   "bucket missing falls back to last segment",
			url:    "https://cdn.example.com/other/xyz.jpg",
			bucket: "fotos",
			want:   "xyz.jpg",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KeyFromURL(tc.url, tc.bucket); got != tc.want {
				t.Fatalf("KeyFromURL(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}
