package util

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Atharva062006/OfflineJudge/model"
	jsoniter "github.com/json-iterator/go"
)

func TestLimitString(t *testing.T) {
	if got := LimitString("", 10); got != nil {
		t.Fatalf("empty input should give nil, got %+v", got)
	}
	got := LimitString("short", 10)
	if got.S != "short" || got.OmitSize != 0 {
		t.Fatalf("unexpected %+v", got)
	}
	got = LimitString(strings.Repeat("x", 25), 10)
	if len(got.S) != 10 || got.OmitSize != 15 {
		t.Fatalf("unexpected truncation %+v", got)
	}
}

func TestLimitStringKeepsRunesWhole(t *testing.T) {
	// "é" is two bytes, so a 4 byte limit falls inside the second one
	got := LimitString("ééé", 4)
	if got.S != "éé" || got.OmitSize != 2 {
		t.Fatalf("unexpected truncation %+v", got)
	}
	got = LimitString("aé", 2)
	if got.S != "a" || got.OmitSize != 2 {
		t.Fatalf("unexpected truncation %+v", got)
	}
	if !utf8.ValidString(LimitString("日本語のテキスト", 7).S) {
		t.Fatal("truncated text is not valid UTF-8")
	}
}

func TestWorkspaceLifecycle(t *testing.T) {
	parent := t.TempDir()
	ws := NewWorkspace(parent)
	if !filepath.IsAbs(ws.Path) {
		t.Fatalf("workspace path should be absolute: %s", ws.Path)
	}
	if _, err := os.Stat(ws.Path); !os.IsNotExist(err) {
		t.Fatal("workspace must not exist before Ensure")
	}
	if err := ws.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if err := ws.Ensure(); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if err := os.WriteFile(ws.Join("a.out"), []byte("bin"), 0755); err != nil {
		t.Fatalf("write: %v", err)
	}
	ws.Remove()
	ws.Remove()
	if _, err := os.Stat(ws.Path); !os.IsNotExist(err) {
		t.Fatalf("workspace still present after Remove: %v", err)
	}
}

func TestWorkspaceRemoveWithoutEnsure(t *testing.T) {
	ws := NewWorkspace(t.TempDir())
	ws.Remove()
}

func TestSafeCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Main.java")
	if err := os.WriteFile(src, []byte("class Main {}"), 0644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "copy.java")
	if err := SafeCopy(src, dst); err != nil {
		t.Fatalf("SafeCopy: %v", err)
	}
	bd, err := os.ReadFile(dst)
	if err != nil || string(bd) != "class Main {}" {
		t.Fatalf("copy mismatch: %q %v", bd, err)
	}
	if err := SafeCopy(dir, dst); err == nil {
		t.Fatal("copying a directory should fail")
	}
}

func TestOneErrorKeepsFirst(t *testing.T) {
	first := errors.New("first")
	oneErr := OneError{}
	oneErr.Add(nil)
	oneErr.Add(first)
	oneErr.Add(errors.New("second"))
	if oneErr.Get() != first {
		t.Fatalf("got %v", oneErr.Get())
	}
}

func TestMakePublishing(t *testing.T) {
	v := &model.Verdict{RunID: "run-1", ProblemID: "add", Status: model.StatusCompileError}
	msg, err := MakePublishing(VerdictResponse(v), v.RunID)
	if err != nil {
		t.Fatalf("MakePublishing: %v", err)
	}
	if msg.CorrelationId != "run-1" || msg.ContentType != "application/json" {
		t.Fatalf("unexpected headers %+v", msg)
	}
	var resp struct {
		ErrCode model.ErrorCode `json:"err"`
		ErrMsg  string          `json:"msg"`
		Data    model.Verdict   `json:"data"`
	}
	if err := jsoniter.Unmarshal(msg.Body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.ErrCode != model.CE || resp.Data.ProblemID != "add" {
		t.Fatalf("unexpected body %s", msg.Body)
	}
}
