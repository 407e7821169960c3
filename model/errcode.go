package model

type ErrorCode int8

const (
	OK ErrorCode = iota
	CE
	IE
	RE
)

// Status is the outcome of a judging run or of a single test case.
type Status string

const (
	StatusAccepted          Status = "Accepted"
	StatusWrongAnswer       Status = "Wrong Answer"
	StatusRuntimeError      Status = "Runtime Error"
	StatusTimeLimitExceeded Status = "Time Limit Exceeded"
	StatusCompileError      Status = "Compilation Error"
	StatusMalformedProblem  Status = "Malformed Problem"
)

// Short returns the judge abbreviation used in logs.
func (s Status) Short() string {
	switch s {
	case StatusAccepted:
		return "AC"
	case StatusWrongAnswer:
		return "WA"
	case StatusRuntimeError:
		return "RTE"
	case StatusTimeLimitExceeded:
		return "TLE"
	case StatusCompileError:
		return "CE"
	case StatusMalformedProblem:
		return "MP"
	}
	return string(s)
}

// Code maps a status to the response error code sent over the queue.
func (s Status) Code() ErrorCode {
	switch s {
	case StatusAccepted, StatusWrongAnswer:
		return OK
	case StatusCompileError:
		return CE
	case StatusRuntimeError, StatusTimeLimitExceeded:
		return RE
	}
	return IE
}
