// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestRunnerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RunnerConfig
		wantErr bool
	}{
		{"default is valid", DefaultConfig().Runner, false},
		{"empty command", RunnerConfig{Command: ""}, true},
		{"whitespace command", RunnerConfig{Command: "   "}, true},
		{"no args is fine", RunnerConfig{Command: "benchopt"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidRunnerConfig) {
				t.Errorf("error = %v, want ErrInvalidRunnerConfig", err)
			}
		})
	}
}

func TestPublishConfig_Validate(t *testing.T) {
	valid := DefaultConfig().Publish

	tests := []struct {
		name    string
		mutate  func(*PublishConfig)
		wantErr bool
	}{
		{"default is valid", func(*PublishConfig) {}, false},
		{"empty remote", func(p *PublishConfig) { p.Remote = "" }, true},
		{"empty branch", func(p *PublishConfig) { p.Branch = "" }, true},
		{"branch with space", func(p *PublishConfig) { p.Branch = "gh pages" }, true},
		{"remote with tab", func(p *PublishConfig) { p.Remote = "ori\tgin" }, true},
		{"empty commit message", func(p *PublishConfig) { p.CommitMessage = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidPublishConfig) {
				t.Errorf("error = %v, want ErrInvalidPublishConfig", err)
			}
		})
	}
}
