// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"testing"
)

func TestExitCode_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		code  ExitCode
		valid bool
	}{
		{"zero", 0, true},
		{"one", 1, true},
		{"max", 255, true},
		{"negative", -1, false},
		{"too large", 256, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, errs := tt.code.IsValid()
			if valid != tt.valid {
				t.Errorf("IsValid() = %v, want %v", valid, tt.valid)
			}
			if !tt.valid {
				if len(errs) != 1 {
					t.Fatalf("IsValid() errs = %d, want 1", len(errs))
				}
				if !errors.Is(errs[0], ErrInvalidExitCode) {
					t.Errorf("errs[0] = %v, want ErrInvalidExitCode", errs[0])
				}
			}
		})
	}
}

func TestExitCode_IsSuccess(t *testing.T) {
	if !ExitCode(0).IsSuccess() {
		t.Errorf("ExitCode(0).IsSuccess() = false, want true")
	}
	if ExitCode(7).IsSuccess() {
		t.Errorf("ExitCode(7).IsSuccess() = true, want false")
	}
}

func TestResult_Failed(t *testing.T) {
	if NewSuccessResult().Failed() {
		t.Errorf("success result reported as failed")
	}
	if !NewExitCodeResult(2).Failed() {
		t.Errorf("non-zero exit not reported as failed")
	}
	if !NewErrorResult(1, errors.New("boom")).Failed() {
		t.Errorf("error result not reported as failed")
	}
}
