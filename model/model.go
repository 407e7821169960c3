package model

type Language string

const (
	LangC      Language = "c"
	LangCpp    Language = "cpp"
	LangJava   Language = "java"
	LangPython Language = "python"
)

// TestCase is one input/expected-output pair. Index is 1-based.
type TestCase struct {
	Index  int
	Input  string
	Output string
}

type Problem struct {
	ID        string
	TestCases []TestCase
}

// Invocation is a ready-to-spawn command line.
type Invocation struct {
	Args []string `json:"args"`
	Dir  string   `json:"dir,omitempty"`
}

type CompileResult struct {
	Succeed  bool
	ErrMsg   *OmitString
	Artifact Invocation
}

type ExecKind int8

const (
	Completed ExecKind = iota
	TimedOut
)

// ExecutionResult is the outcome of one child process. Stdout, Stderr and
// ExitCode are only meaningful when Kind is Completed.
type ExecutionResult struct {
	Kind     ExecKind
	ExitCode int
	Stdout   string
	Stderr   string
}

func (r ExecutionResult) Succeed() bool {
	return r.Kind == Completed && r.ExitCode == 0
}

type FailureDetail struct {
	Index    int         `json:"index"`
	Status   Status      `json:"status"`
	Input    string      `json:"input"`
	Expected string      `json:"expected"`
	Got      string      `json:"got"`
	Stderr   *OmitString `json:"stderr,omitempty"`
}

// Verdict is the aggregate result of one judging run.
type Verdict struct {
	RunID             string         `json:"run_id"`
	ProblemID         string         `json:"problem"`
	Language          Language       `json:"language"`
	Status            Status         `json:"status"`
	Total             int            `json:"total"`
	Passed            int            `json:"passed"`
	Failed            int            `json:"failed"`
	WrongAnswers      int            `json:"wa"`
	TimeLimitExceeded int            `json:"tle"`
	RuntimeErrors     int            `json:"rte"`
	Failure           *FailureDetail `json:"failure,omitempty"`
	CompileMessage    *OmitString    `json:"compile_msg,omitempty"`
	Message           string         `json:"msg,omitempty"`
}

func (v *Verdict) Accepted() bool {
	return v.Status == StatusAccepted
}

type Response struct {
	ErrCode ErrorCode   `json:"err"`
	ErrMsg  string      `json:"msg"`
	Data    interface{} `json:"data,omitempty"`
}

type OmitString struct {
	S        string `json:"s"`
	OmitSize int64  `json:"omit_size"`
}

func (o *OmitString) String() string {
	if o == nil {
		return ""
	}
	return o.S
}
