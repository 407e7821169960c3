package util

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/model"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

// Workspace is the scratch build directory of one judging run. It is created
// lazily by Ensure and removed once by Remove.
type Workspace struct {
	Path string

	once sync.Once
}

func NewWorkspace(parent string) *Workspace {
	if abs, err := filepath.Abs(parent); err == nil {
		parent = abs
	}
	return &Workspace{Path: filepath.Join(parent, config.ScratchPrefix+uuid.NewString())}
}

// Ensure creates the directory. Calling it again is a no-op.
func (w *Workspace) Ensure() error {
	if err := os.MkdirAll(w.Path, 0755); err != nil {
		ErrorLog(err, "Workspace.Ensure(): mkdir")
		return errors.Wrap(err, "cannot create work directory")
	}
	return nil
}

// Remove deletes the directory tree. Failures are logged, never returned.
func (w *Workspace) Remove() {
	w.once.Do(func() {
		if err := os.RemoveAll(w.Path); err != nil {
			ErrorLog(err, "Workspace.Remove(): remove all")
		}
	})
}

func (w *Workspace) Join(elem ...string) string {
	return filepath.Join(append([]string{w.Path}, elem...)...)
}

// LimitString keeps at most limit bytes of s, cut on a rune boundary, and
// records how much was dropped.
func LimitString(s string, limit int64) *model.OmitString {
	if s == "" {
		return nil
	}
	if limit <= 0 || int64(len(s)) <= limit {
		return &model.OmitString{S: s}
	}
	cut := int(limit)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return &model.OmitString{
		S:        s[:cut],
		OmitSize: int64(len(s) - cut),
	}
}

func SafeCopy(src string, dst string) error {
	os.Remove(dst)
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		ErrorLog(err, "SafeCopy(): get source file status")
		return err
	}

	if !sourceFileStat.Mode().IsRegular() {
		err := errors.Errorf("%s is not a regular file", src)
		ErrorLog(err, "SafeCopy(): source file is not a regular file")
		return err
	}

	source, err := os.Open(src)
	if err != nil {
		ErrorLog(err, "SafeCopy(): open source file")
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		ErrorLog(err, "SafeCopy(): open destination file")
		return err
	}
	defer destination.Close()
	_, err = io.Copy(destination, source)
	if err != nil {
		ErrorLog(err, "SafeCopy(): copy file")
	}
	return err
}

// OneError keeps the first error reported by any goroutine.
type OneError struct {
	mu  sync.Mutex
	Err error
}

func (o *OneError) Add(err error) {
	if err == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err == nil {
		o.Err = err
	}
}

func (o *OneError) Get() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Err
}

func MakePublishing(resp model.Response, corId string) (amqp091.Publishing, error) {
	bd, err := jsoniter.Marshal(resp)
	if err != nil {
		ErrorLog(err, "MakePublishing(): marshal")
		return amqp091.Publishing{}, errors.Wrap(err, "marshal response")
	}
	return amqp091.Publishing{
		ContentType:   "application/json",
		CorrelationId: corId,
		Body:          bd,
	}, nil
}

// VerdictResponse wraps a verdict in the queue envelope.
func VerdictResponse(v *model.Verdict) model.Response {
	resp := model.Response{
		ErrCode: v.Status.Code(),
		ErrMsg:  string(v.Status),
		Data:    v,
	}
	if v.Status == model.StatusMalformedProblem {
		resp.ErrMsg = v.Message
	}
	return resp
}
