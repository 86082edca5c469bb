package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// MarshalJSON renders data as indented JSON.
func MarshalJSON(data interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "   ")
	if err != nil {
		return nil, errors.Wrap(err, "problem writing data")
	}
	return out, nil
}

// WriteJSON creates fn and writes data to it as indented JSON. The file is
// removed again if it cannot be written completely.
func WriteJSON(fn string, data interface{}) error {
	out, err := MarshalJSON(data)
	if err != nil {
		return err
	}

	f, err := os.Create(fn)
	if err != nil {
		return errors.WithStack(err)
	}

	return writeFile(fn, f, out)
}

type syncWriteCloser interface {
	io.WriteCloser
	Sync() error
}

func writeFile(fn string, f syncWriteCloser, data []byte) error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(writeBytes(f, data))
	catcher.Add(f.Close())
	if catcher.HasErrors() {
		catcher.Add(os.Remove(fn))
		return errors.Wrapf(catcher.Resolve(), "problem writing '%s'", fn)
	}

	return nil
}

// PrintJSON writes data to w as indented JSON.
func PrintJSON(w io.Writer, data interface{}) error {
	out, err := MarshalJSON(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(out))
	return errors.WithStack(err)
}

func writeBytes(f syncWriteCloser, data []byte) error {
	if _, err := f.Write(data); err != nil {
		return errors.WithStack(err)
	}

	if _, err := f.Write([]byte("\n")); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(f.Sync())
}
