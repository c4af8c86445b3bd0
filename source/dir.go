package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"antcss/tokens"
)

// Dir reads previously dumped worker results from a directory:
//
//	<dir>/<algorithm[+algorithm]>-tokens.json
//	<dir>/full.css
//	<dir>/reset.css
//	<dir>/components.json (optional)
type Dir struct {
	dir string
}

// NewDir creates directory source.
func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

func (d *Dir) Tokens(ctx context.Context, algorithms []string) (*tokens.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := filepath.Join(d.dir, strings.Join(algorithms, "+")+"-tokens.json")
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open tokens dump: %w", err)
	}
	defer f.Close()

	set, err := tokens.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode tokens dump '%s': %w", name, err)
	}
	return set, nil
}

func (d *Dir) Stylesheet(ctx context.Context, _ StyleOptions) (string, error) {
	return d.read(ctx, "full.css")
}

func (d *Dir) Reset(ctx context.Context) (string, error) {
	return d.read(ctx, "reset.css")
}

// Components returns names from components.json, no error and nil slice
// when the file is absent.
func (d *Dir) Components(ctx context.Context) ([]string, error) {
	data, err := d.read(ctx, "components.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, fmt.Errorf("unable to decode components list: %w", err)
	}
	return names, nil
}

func (d *Dir) read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
