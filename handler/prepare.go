package handler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/model"
	"github.com/Atharva062006/OfflineJudge/util"
	"github.com/pkg/errors"
)

// MalformedError describes why a problem's test data cannot be judged.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return e.Reason
}

func (e *MalformedError) Is(target error) bool {
	return target == config.ErrMalformedProblem
}

func malformed(format string, args ...interface{}) error {
	return &MalformedError{Reason: errors.Errorf(format, args...).Error()}
}

// PrepareTestCases pairs line i of the input file with line i of the output
// file. Each line keeps its trailing newline, as it is fed to the program.
func PrepareTestCases(problemDir string, inputName string, outputName string) ([]model.TestCase, error) {
	inputPath := filepath.Join(problemDir, inputName)
	outputPath := filepath.Join(problemDir, outputName)
	if !isRegular(inputPath) || !isRegular(outputPath) {
		return nil, malformed("%s or %s not found", inputName, outputName)
	}
	inputBytes, err := os.ReadFile(inputPath)
	if err != nil {
		util.ErrorLog(err, "PrepareTestCases(): read input file")
		return nil, errors.Wrap(err, "cannot read input file")
	}
	outputBytes, err := os.ReadFile(outputPath)
	if err != nil {
		util.ErrorLog(err, "PrepareTestCases(): read output file")
		return nil, errors.Wrap(err, "cannot read output file")
	}
	inputLines := splitLines(string(inputBytes))
	outputLines := splitLines(string(outputBytes))
	if len(inputLines) != len(outputLines) {
		return nil, malformed("%s and %s line count mismatch (%d vs %d)",
			inputName, outputName, len(inputLines), len(outputLines))
	}
	testCases := make([]model.TestCase, 0, len(inputLines))
	for i := range inputLines {
		testCases = append(testCases, model.TestCase{
			Index:  i + 1,
			Input:  inputLines[i],
			Output: outputLines[i],
		})
	}
	return testCases, nil
}

// splitLines splits s after every '\n', keeping the terminator. A final line
// without one still counts. CRLF and a lone CR are read as LF.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := make([]string, 0)
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

func isRegular(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.Mode().IsRegular()
}
