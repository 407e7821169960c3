package handler

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/model"
	"github.com/Atharva062006/OfflineJudge/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LoadProblem reads the test set stored under the problem's directory.
func LoadProblem(conf *config.Configure, problemID string) (*model.Problem, error) {
	if problemID == "" || problemID == "." || problemID == ".." || strings.ContainsAny(problemID, `/\`) {
		return nil, malformed("invalid problem identifier %q", problemID)
	}
	testCases, err := PrepareTestCases(conf.ProblemDir(problemID), conf.InputFile, conf.OutputFile)
	if err != nil {
		return nil, err
	}
	util.InfoLog("test cases loaded", nil, zap.String("problem", problemID), zap.Int("total", len(testCases)))
	return &model.Problem{ID: problemID, TestCases: testCases}, nil
}

// ListProblems returns the identifiers of every problem directory that holds
// both data files.
func ListProblems(conf *config.Configure) ([]string, error) {
	entries, err := os.ReadDir(conf.DataFilesPath)
	if err != nil {
		util.ErrorLog(err, "ListProblems(): read directory")
		return nil, errors.Wrap(err, "cannot read data files path")
	}
	problems := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := conf.ProblemDir(entry.Name())
		if isRegular(filepath.Join(dir, conf.InputFile)) && isRegular(filepath.Join(dir, conf.OutputFile)) {
			problems = append(problems, entry.Name())
		}
	}
	sort.Strings(problems)
	return problems, nil
}
