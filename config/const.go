package config

import "errors"

var ErrTLE = errors.New("time limit exceeded")
var ErrMalformedProblem = errors.New("malformed problem")
var ErrUsage = errors.New("usage: judge [-c config.yaml] [-json] [-v] <problem> <source_file>")

const DefaultOmitStringLen = int64(4096)
const DelimiterWidth = 50
const ScratchPrefix = "judge-"

