//go:build !linux

package cmd

import (
	"errors"
	"fmt"
)

func readFrontendStatus(path string) (frontendStatus, error) {
	return frontendStatus{}, fmt.Errorf("frontend status %s: %w", path, errors.ErrUnsupported)
}
