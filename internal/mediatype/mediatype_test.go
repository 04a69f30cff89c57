package mediatype

import "testing"

func TestIsImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mediaType string
		want      bool
	}{
		{mediaType: "image/png", want: true},
		{mediaType: "image/jpeg", want: true},
		{mediaType: "image/gif", want: true},
		{mediaType: "image/webp", want: false},
		{mediaType: "IMAGE/PNG", want: false},
		{mediaType: "image/png; charset=binary", want: false},
		{mediaType: "text/plain", want: false},
		{mediaType: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.mediaType, func(t *testing.T) {
			t.Parallel()
			if got := IsImage(tt.mediaType); got != tt.want {
				t.Fatalf("IsImage(%q) = %t, want %t", tt.mediaType, got, tt.want)
			}
		})
	}
}

func TestCountImages(t *testing.T) {
	t.Parallel()

	got := CountImages([]string{PNG, "video/mp4", GIF, "", JPEG, "application/pdf"})
	if got != 3 {
		t.Fatalf("CountImages() = %d, want 3", got)
	}
	if got := CountImages(nil); got != 0 {
		t.Fatalf("CountImages(nil) = %d, want 0", got)
	}
}
