package dnos6

import (
	"os"
	"regexp"

	"github.com/pkg/errors"
)

var fileSystemRe = regexp.MustCompile(`(?m)^\s*(\S+:)`)

// CreateTempFile stages configuration text in a temp file for a push. The
// caller removes the file when the push is done; it is not kept across calls.
func CreateTempFile(config string) (string, error) {
	f, err := os.CreateTemp("", "dnos6-config-")
	if err != nil {
		return "", errors.Wrap(err, "unable to create staging file")
	}
	if _, err := f.WriteString(config); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", errors.Wrap(err, "unable to write staging file")
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(err, "unable to write staging file")
	}
	return f.Name(), nil
}

// DiscoverFileSystem returns the device filesystem for config pushes. An
// explicit DestFileSystem override always wins; otherwise the first
// filesystem the device lists is used, best-effort.
func (d *Driver) DiscoverFileSystem() (string, error) {
	if d.opts.DestFileSystem != "" {
		return d.opts.DestFileSystem, nil
	}
	output, err := d.send("dir")
	if err != nil {
		return "", err
	}
	m := fileSystemRe.FindStringSubmatch(output)
	if m == nil {
		return "", errors.New("filesystem autodetection failed, set DestFileSystem to work around")
	}
	return m[1], nil
}
