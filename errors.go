package perfguard

import (
	"fmt"
)

// IOErrorKind classifies a failure at the filesystem boundary.
type IOErrorKind string

const (
	ReadErr               IOErrorKind = "ReadErr"
	WriteErr              IOErrorKind = "WriteErr"
	MissingFilenameErr    IOErrorKind = "MissingFilenameErr"
	FilenameNotUnicodeErr IOErrorKind = "FilenameNotUnicodeErr"
	BadFileContentsErr    IOErrorKind = "BadFileContentsErr"
)

func originating(err error) string {
	if err == nil {
		return "None"
	}
	return err.Error()
}

// IOError reports a filesystem failure along with the offending path and,
// when available, the underlying error.
type IOError struct {
	Kind IOErrorKind
	Path string
	Err  error
}

// NewIOError returns an IOError of the given kind.
func NewIOError(kind IOErrorKind, path string, err error) *IOError {
	return &IOError{Kind: kind, Path: path, Err: err}
}

func (e *IOError) Error() string {
	switch e.Kind {
	case ReadErr:
		return fmt.Sprintf("ReadErr: The file cannot be read.\nFilepath: %s\nOriginating Exception: %s", e.Path, originating(e.Err))
	case WriteErr:
		return fmt.Sprintf("WriteErr: The file cannot be written to.\nFilepath: %s\nOriginating Exception: %s", e.Path, originating(e.Err))
	case MissingFilenameErr:
		return fmt.Sprintf("MissingFilenameErr: The path provided does not specify a file.\nFilepath: %s", e.Path)
	case FilenameNotUnicodeErr:
		return fmt.Sprintf("FilenameNotUnicodeErr: The filename is not expressible in unicode. Consider renaming the file.\nFilepath: %s", e.Path)
	case BadFileContentsErr:
		return fmt.Sprintf("BadFileContentsErr: Check that the file exists and is readable.\nFilepath: %s\nOriginating Exception: %s", e.Path, originating(e.Err))
	default:
		return fmt.Sprintf("%s: %s\nOriginating Exception: %s", e.Kind, e.Path, originating(e.Err))
	}
}

func (e *IOError) Cause() error  { return e.Err }
func (e *IOError) Unwrap() error { return e.Err }

// VersionParseError is returned for text that is not a "major.minor.patch"
// version.
type VersionParseError struct {
	Input string
}

func (e *VersionParseError) Error() string {
	return fmt.Sprintf("VersionParseFail: Error parsing input `%s`. Must be in the format \"major.minor.patch\" where each component is an integer.", e.Input)
}

// MetricParseError is returned for text that is not a
// "metricname___projectname" stem.
type MetricParseError struct {
	Input string
}

func (e *MetricParseError) Error() string {
	return fmt.Sprintf("MetricParseFail: Error parsing input `%s`. Must be in the format \"metricname%sprojectname\" with no file extensions.", e.Input, MetricSeparator)
}

// BadJSONError is returned when the contents of a file do not decode into
// the expected shape.
type BadJSONError struct {
	Path string
	Err  error
}

func (e *BadJSONError) Error() string {
	return fmt.Sprintf("BadJSONErr: JSON in file cannot be deserialized as expected.\nFilepath: %s\nOriginating Exception: %s", e.Path, originating(e.Err))
}

func (e *BadJSONError) Cause() error  { return e.Err }
func (e *BadJSONError) Unwrap() error { return e.Err }

// SerializationError is returned when a value cannot be encoded.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("SerializationErr: Object cannot be serialized as expected.\nOriginating Exception: %s", originating(e.Err))
}

func (e *SerializationError) Cause() error  { return e.Err }
func (e *SerializationError) Unwrap() error { return e.Err }

// CommandError is returned when the benchmarking tool cannot be run at all.
type CommandError struct {
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("CommandErr: System command failed to run.\nOriginating Exception: %s", originating(e.Err))
}

func (e *CommandError) Cause() error  { return e.Err }
func (e *CommandError) Unwrap() error { return e.Err }

// NonZeroExitCodeError is returned when the benchmarking tool exits with a
// failure status.
type NonZeroExitCodeError struct {
	Code int
}

func (e *NonZeroExitCodeError) Error() string {
	return fmt.Sprintf("Hyperfine child process exited with non-zero exit code: %d", e.Code)
}

// CannotRecreateTempDirError is returned when the staging directory cannot
// be cleared and created again.
type CannotRecreateTempDirError struct {
	Path string
	Err  error
}

func (e *CannotRecreateTempDirError) Error() string {
	return fmt.Sprintf("CannotRecreateTempDirErr: attempted to delete and recreate temp dir at path %s\nOriginating Exception: %s", e.Path, originating(e.Err))
}

func (e *CannotRecreateTempDirError) Cause() error  { return e.Err }
func (e *CannotRecreateTempDirError) Unwrap() error { return e.Err }

// MeasurementArityError is returned when a report does not hold exactly
// the number of entries its calling convention requires.
type MeasurementArityError struct {
	Source string
	Field  string
	Count  int
}

func (e *MeasurementArityError) Error() string {
	return fmt.Sprintf("MeasurementArityErr: expected exactly one entry in `%s` for `%s`, found %d.", e.Field, e.Source, e.Count)
}

// NoBaselinesFoundError is returned when there is no baseline to compare
// samples against.
type NoBaselinesFoundError struct {
	Dir string
}

func (e *NoBaselinesFoundError) Error() string {
	if e.Dir == "" {
		return "NoBaselinesFoundErr: no baselines were provided."
	}
	return fmt.Sprintf("NoBaselinesFoundErr: no baselines found in dir %s", e.Dir)
}
