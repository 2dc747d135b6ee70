package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// link invokes the C compiler to compile an LLVM module and link it into an
// executable.
func link(cc, llPath, exePath string, flags []string) error {
	args := make([]string, 0, len(flags)+3)
	args = append(args, llPath, "-o", exePath)
	args = append(args, flags...)

	command := exec.Command(cc, args...)

	output, err := command.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("`%s` failed with exit code %d:\n%s", cc, exitErr.ExitCode(), strings.TrimSpace(string(output)))
		}

		return fmt.Errorf("failed to run `%s`: %w", cc, err)
	}

	return nil
}

// runExecutable runs a built executable attached to the current terminal and
// returns its exit code.
func runExecutable(exePath string) (int, error) {
	command := exec.Command(exePath)
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr

	if err := command.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}

		return 1, fmt.Errorf("failed to run `%s`: %w", exePath, err)
	}

	return 0, nil
}
