package foreign

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"jay/internal/interop"
)

// file pairs an open file with the reader that buffers readLine, so that
// successive reads share one buffer.
type file struct {
	f      *os.File
	reader *bufio.Reader
}

func fsType() interop.HostType {
	path := interop.String("path")
	content := interop.String("content")
	this := interop.Handle[*file]("this")
	return interop.HostType{
		Name: "jay.fs",
		Methods: []interop.Method{
			static("readFile", fsReadFile, path),
			static("writeFile", fsWriteFile, path, content),
			static("appendFile", fsAppendFile, path, content),
			static("exists", fsExists, path),
			static("isDir", fsIsDir, path),
			static("size", fsSize, path),
			static("mkDirs", fsMkDirs, path),
			static("rm", fsRm, path),
			static("openFile", fsOpenFile, path),
			static("openFile", fsOpenFile, path, interop.String("mode")),
			instance("readLine", this, fsReadLine),
			instance("write", this, fsWrite, content),
			instance("closeFile", this, fsCloseFile),
		},
	}
}

func fsReadFile(_ context.Context, _ any, args []any) (any, error) {
	data, err := os.ReadFile(args[0].(string))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func fsWriteFile(_ context.Context, _ any, args []any) (any, error) {
	if err := os.WriteFile(args[0].(string), []byte(args[1].(string)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	return nil, nil
}

// fsAppendFile returns the number of bytes written.
func fsAppendFile(_ context.Context, _ any, args []any) (any, error) {
	f, err := os.OpenFile(args[0].(string), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	n, err := f.WriteString(args[1].(string))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to append to file: %w", err)
	}
	return n, nil
}

func fsExists(_ context.Context, _ any, args []any) (any, error) {
	_, err := os.Stat(args[0].(string))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return nil, err
	}
}

func fsIsDir(_ context.Context, _ any, args []any) (any, error) {
	info, err := os.Stat(args[0].(string))
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	return info.IsDir(), nil
}

func fsSize(_ context.Context, _ any, args []any) (any, error) {
	info, err := os.Stat(args[0].(string))
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	return info.Size(), nil
}

func fsMkDirs(_ context.Context, _ any, args []any) (any, error) {
	if err := os.MkdirAll(args[0].(string), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	return nil, nil
}

func fsRm(_ context.Context, _ any, args []any) (any, error) {
	if err := os.Remove(args[0].(string)); err != nil {
		return nil, fmt.Errorf("failed to remove file: %w", err)
	}
	return nil, nil
}

// fsOpenFile opens for reading by default; mode "w" truncates and "a" appends.
func fsOpenFile(_ context.Context, _ any, args []any) (any, error) {
	flag := os.O_RDONLY
	if len(args) > 1 {
		switch mode := args[1].(string); mode {
		case "r":
		case "w":
			flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		case "a":
			flag = os.O_APPEND | os.O_WRONLY | os.O_CREATE
		default:
			return nil, fmt.Errorf("unknown file mode %q, want r, w or a", mode)
		}
	}

	f, err := os.OpenFile(args[0].(string), flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &file{f: f}, nil
}

// fsReadLine returns the next line including its newline, or nil at end of file.
func fsReadLine(_ context.Context, recv any, _ []any) (any, error) {
	h := recv.(*file)
	if h.reader == nil {
		h.reader = bufio.NewReader(h.f)
	}
	line, err := h.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return nil, nil
			}
			return line, nil
		}
		return nil, fmt.Errorf("failed to read line: %w", err)
	}
	return line, nil
}

func fsWrite(_ context.Context, recv any, args []any) (any, error) {
	n, err := recv.(*file).f.WriteString(args[0].(string))
	if err != nil {
		return nil, fmt.Errorf("failed to write to file: %w", err)
	}
	return n, nil
}

func fsCloseFile(_ context.Context, recv any, _ []any) (any, error) {
	if err := recv.(*file).f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return nil, nil
}
