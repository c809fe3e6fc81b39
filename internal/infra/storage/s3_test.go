package storage

import "testing"

func TestURL(t *testing.T) {
	cases := []struct {
		cfg  S3Config
		want string
	}{
		{S3Config{Bucket: "b", Region: "sa-east-1"}, "https://b.s3.sa-east-1.amazonaws.com/avatars/1.webp"},
		{S3Config{Bucket: "b", Region: "us-east-1", Endpoint: "http://minio:9000/"}, "http://minio:9000/b/avatars/1.webp"},
		{S3Config{Bucket: "b", Region: "us-east-1", PublicURL: "https://cdn.test/"}, "https://cdn.test/avatars/1.webp"},
	}
	for _, tc := range cases {
		if got := NewS3(tc.cfg).URL("avatars/1.webp"); got != tc.want {
			t.Errorf("URL = %q, want %q", got, tc.want)
		}
	}
}
