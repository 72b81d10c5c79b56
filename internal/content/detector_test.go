package content

import (
	"testing"
)

func TestDetector_Detect(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	pdf := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	tests := []struct {
		name     string
		filename string
		content  []byte
		wantType string
		wantSize int64
	}{
		{
			name:     "plain text falls back to extension",
			filename: "file.jpg",
			content:  []byte("file_content"),
			wantType: "image/jpeg",
			wantSize: 12,
		},
		{
			name:     "text file",
			filename: "a.txt",
			content:  []byte("hi"),
			wantType: "text/plain",
			wantSize: 2,
		},
		{
			name:     "sniffed type wins over misleading extension",
			filename: "picture.txt",
			content:  png,
			wantType: "image/png",
			wantSize: int64(len(png)),
		},
		{
			name:     "pdf without extension",
			filename: "report",
			content:  pdf,
			wantType: "application/pdf",
			wantSize: int64(len(pdf)),
		},
		{
			name:     "empty content",
			filename: "empty.txt",
			content:  []byte{},
			wantType: "text/plain",
			wantSize: 0,
		},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotSize := d.Detect(tt.filename, tt.content)
			if gotType != tt.wantType {
				t.Errorf("Detect() type = %q, want %q", gotType, tt.wantType)
			}
			if gotSize != tt.wantSize {
				t.Errorf("Detect() size = %d, want %d", gotSize, tt.wantSize)
			}
		})
	}
}

func TestBaseType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"text/plain; charset=utf-8", "text/plain"},
		{"image/png", "image/png"},
		{"", ""},
		{";;", ""},
	}

	for _, tt := range tests {
		if got := baseType(tt.in); got != tt.want {
			t.Errorf("baseType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
