// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"strings"
	"testing"
)

func TestParseInstallSource(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    InstallSource
		wantErr bool
	}{
		{
			name:  "simple owner and branch",
			value: "someuser:somebranch",
			want:  InstallSource{Owner: "someuser", Branch: "somebranch"},
		},
		{
			name:  "branch with slashes",
			value: "someuser:feature/new-solver",
			want:  InstallSource{Owner: "someuser", Branch: "feature/new-solver"},
		},
		{
			name: "split happens on the last colon",
			// Owner names cannot contain colons, so a second colon belongs
			// to the branch side only if it is not the last one.
			value: "some:user:branch",
			want:  InstallSource{Owner: "some:user", Branch: "branch"},
		},
		{name: "no colon", value: "someuser", wantErr: true},
		{name: "empty owner", value: ":branch", wantErr: true},
		{name: "empty branch", value: "owner:", wantErr: true},
		{name: "empty value", value: "", wantErr: true},
		{name: "only colon", value: ":", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstallSource(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseInstallSource(%q) error = nil, want error", tt.value)
				}
				if !errors.Is(err, ErrInvalidInstallSource) {
					t.Errorf("error = %v, want ErrInvalidInstallSource", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInstallSource(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ParseInstallSource(%q) = %+v, want %+v", tt.value, got, tt.want)
			}
		})
	}
}

func TestInstallSourceFromEnv(t *testing.T) {
	t.Run("unset falls back to default", func(t *testing.T) {
		t.Setenv(SourceEnvVar, "")
		got, err := InstallSourceFromEnv()
		if err != nil {
			t.Fatalf("InstallSourceFromEnv() error = %v", err)
		}
		if got != DefaultInstallSource() {
			t.Errorf("InstallSourceFromEnv() = %+v, want default %+v", got, DefaultInstallSource())
		}
	})

	t.Run("override is honored", func(t *testing.T) {
		t.Setenv(SourceEnvVar, "someuser:somebranch")
		got, err := InstallSourceFromEnv()
		if err != nil {
			t.Fatalf("InstallSourceFromEnv() error = %v", err)
		}
		want := InstallSource{Owner: "someuser", Branch: "somebranch"}
		if got != want {
			t.Errorf("InstallSourceFromEnv() = %+v, want %+v", got, want)
		}
	})

	t.Run("malformed override is an error", func(t *testing.T) {
		t.Setenv(SourceEnvVar, "garbage")
		if _, err := InstallSourceFromEnv(); err == nil {
			t.Errorf("InstallSourceFromEnv() error = nil, want error")
		}
	})
}

func TestInstallSource_InstallCommand(t *testing.T) {
	src := InstallSource{Owner: "someuser", Branch: "somebranch"}
	got := strings.Join(src.InstallCommand(), " ")
	want := "pip install -U git+https://github.com/someuser/benchopt.git@somebranch"
	if got != want {
		t.Errorf("InstallCommand() = %q, want %q", got, want)
	}
}

func TestInstallSource_String(t *testing.T) {
	if got := DefaultInstallSource().String(); got != "benchopt:main" {
		t.Errorf("String() = %q, want %q", got, "benchopt:main")
	}
}
