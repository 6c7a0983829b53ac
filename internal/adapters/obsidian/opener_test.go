package obsidian

import (
	"testing"
)

func TestNewOpener_DerivesVaultName(t *testing.T) {
	tests := []struct {
		name          string
		vaultPath     string
		wantVaultName string
	}{
		{
			name:          "simple vault path",
			vaultPath:     "/home/dev/Plans",
			wantVaultName: "Plans",
		},
		{
			name:          "vault with spaces",
			vaultPath:     "/home/dev/Product Plans",
			wantVaultName: "Product Plans",
		},
		{
			name:          "nested vault path",
			vaultPath:     "/home/dev/documents/work/Roadmap",
			wantVaultName: "Roadmap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := NewOpener(tt.vaultPath)
			if opener.vaultName != tt.wantVaultName {
				t.Errorf("vaultName = %q, want %q", opener.vaultName, tt.wantVaultName)
			}
		})
	}
}

func TestBuildURI(t *testing.T) {
	tests := []struct {
		name    string
		relPath string
		wantURI string
		wantErr bool
	}{
		{
			name:    "task file",
			relPath: "tasks/T-001.md",
			wantURI: "obsidian://open?vault=Plans&file=tasks%2FT-001.md",
		},
		{
			name:    "path with spaces",
			relPath: "milestones/Q3 Launch.md",
			wantURI: "obsidian://open?vault=Plans&file=milestones%2FQ3+Launch.md",
		},
		{
			name:    "escapes the vault",
			relPath: "../secrets.md",
			wantErr: true,
		},
		{
			name:    "absolute path",
			relPath: "/etc/passwd",
			wantErr: true,
		},
	}

	opener := NewOpener("/home/dev/Plans")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := opener.BuildURI(tt.relPath)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if uri != tt.wantURI {
				t.Errorf("uri = %q, want %q", uri, tt.wantURI)
			}
		})
	}
}
