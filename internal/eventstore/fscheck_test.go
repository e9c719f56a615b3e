package eventstore

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckLocalFilesystem(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		fsType  string
		err     error
		wantErr string
	}{
		{name: "local", fsType: "apfs"},
		{name: "linux magic", fsType: "0xef53"},
		{name: "nfs", fsType: "nfs", wantErr: "network filesystem \"nfs\""},
		{name: "smb uppercase", fsType: "SMBFS", wantErr: "webhooks.store_path"},
		{name: "unsupported platform", err: errDetectUnsupported},
		{name: "statfs failure", err: errors.New("boom"), wantErr: "detect filesystem"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "events.db")
			err := checkLocalFilesystemWith(path, func(string) (string, error) { return tc.fsType, tc.err })
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestCheckLocalFilesystemInspectsNearestParent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var inspected string
	err := checkLocalFilesystemWith(filepath.Join(root, "a", "b", "events.db"), func(p string) (string, error) {
		inspected = p
		return "ext4", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if inspected != root {
		t.Fatalf("inspected %q, want %q", inspected, root)
	}
}

func TestCheckLocalFilesystemEmptyPath(t *testing.T) {
	if err := checkLocalFilesystem(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
