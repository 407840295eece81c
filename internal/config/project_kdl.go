package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
	"github.com/sirupsen/logrus"

	yerrors "github.com/standardbeagle/yoink/internal/errors"
)

// ProjectFileName is the overlay looked up in the search root by the CLI.
const ProjectFileName = ".yoink.kdl"

// loadProjectFile applies a KDL overlay such as:
//
//	include_hidden true
//	sort_mode "alphabetical"
//	exclude "dist/**" "coverage/**"
//
// Toggles override the user file; exclude patterns are appended after it.
func (b *builder) loadProjectFile(path string, log *logrus.Entry) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return yerrors.NewConfigError(path, "", "", err)
	}
	defer file.Close()

	doc, err := kdl.Parse(file)
	if err != nil {
		return yerrors.NewConfigError(path, "", "", fmt.Errorf("failed to parse KDL: %w", err))
	}

	for _, n := range doc.Nodes {
		key := nodeName(n)
		switch key {
		case KeyIncludeHidden, KeyIncludeMounts, KeyIncludeSymlinks:
			v, err := boolArg(n)
			if err != nil {
				return yerrors.NewConfigError(path, key, argString(n), err)
			}
			b.setBool(key, v)
		case KeySortMode:
			s, ok := firstStringArg(n)
			if !ok {
				return yerrors.NewConfigError(path, key, argString(n), errors.New("expected a string"))
			}
			mode, err := ParseSortMode(s)
			if err != nil {
				return yerrors.NewConfigError(path, key, s, err)
			}
			b.sortMode = mode
		case "exclude":
			for _, pattern := range collectStringArgs(n) {
				b.addGlob(pattern, path)
			}
		default:
			log.WithFields(logrus.Fields{"path": path, "node": key}).Warn("ignoring unknown node in project config")
		}
	}

	log.WithField("path", path).Debug("applied project config")
	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	s, ok := n.Arguments[0].Value.(string)
	return s, ok
}

// boolArg accepts a KDL boolean or any string ParseBool understands.
func boolArg(n *document.Node) (bool, error) {
	if len(n.Arguments) == 0 {
		return false, errors.New("missing value")
	}
	switch v := n.Arguments[0].Value.(type) {
	case bool:
		return v, nil
	case string:
		return ParseBool(v)
	default:
		return false, fmt.Errorf("expected a boolean, got %T", v)
	}
}

func argString(n *document.Node) string {
	if len(n.Arguments) == 0 {
		return ""
	}
	return fmt.Sprint(n.Arguments[0].Value)
}

// collectStringArgs reads inline arguments, or child nodes for the block form
// exclude { "a/**"; "b/**" }.
func collectStringArgs(n *document.Node) []string {
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, child := range n.Children {
		if s, ok := firstStringArg(child); ok {
			out = append(out, s)
		} else if child.Name != nil {
			if s, ok := child.Name.Value.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
