// Package report renders verdicts for people and for machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/model"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Render writes the compilation error, the malformed-problem message, or the
// delimited summary block of v.
func Render(w io.Writer, v *model.Verdict) {
	switch v.Status {
	case model.StatusCompileError:
		fmt.Fprintln(w, "Compilation Error")
		writeOmitString(w, v.CompileMessage)
		return
	case model.StatusMalformedProblem:
		fmt.Fprintln(w, v.Message)
		return
	}

	delimiter := strings.Repeat("=", config.DelimiterWidth)
	fmt.Fprintf(w, "\n%s\n", delimiter)
	if v.Accepted() {
		fmt.Fprintln(w, "VERDICT: ACCEPTED")
		fmt.Fprintf(w, "%d/%d testcases passed\n", v.Passed, v.Total)
	} else {
		fmt.Fprintln(w, "VERDICT: FAILED")
		fmt.Fprintf(w, "%d/%d testcases passed, %d/%d failed\n", v.Passed, v.Total, v.Failed, v.Total)
		if f := v.Failure; f != nil {
			fmt.Fprintf(w, "Failed at test case #%d: %s\n", f.Index, f.Status)
			fmt.Fprintf(w, "Input: %s\n", f.Input)
			fmt.Fprintf(w, "Expected: %s\n", f.Expected)
			if f.Status != model.StatusTimeLimitExceeded {
				fmt.Fprintf(w, "Got: %s\n", f.Got)
			}
			if f.Stderr != nil {
				fmt.Fprintln(w, "stderr:")
				writeOmitString(w, f.Stderr)
			}
		}
		if v.WrongAnswers > 0 {
			fmt.Fprintf(w, "Total Wrong Answers: %d\n", v.WrongAnswers)
		}
		if v.TimeLimitExceeded > 0 {
			fmt.Fprintf(w, "Time Limit Exceeded: %d\n", v.TimeLimitExceeded)
		}
		if v.RuntimeErrors > 0 {
			fmt.Fprintf(w, "Runtime Error: %d\n", v.RuntimeErrors)
		}
	}
	fmt.Fprintln(w, delimiter)
}

func writeOmitString(w io.Writer, s *model.OmitString) {
	if s == nil {
		return
	}
	fmt.Fprint(w, s.S)
	if !strings.HasSuffix(s.S, "\n") {
		fmt.Fprintln(w)
	}
	if s.OmitSize > 0 {
		fmt.Fprintf(w, "(%d bytes omitted)\n", s.OmitSize)
	}
}

func WriteJSON(w io.Writer, v *model.Verdict) error {
	bd, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", bd)
	return err
}
