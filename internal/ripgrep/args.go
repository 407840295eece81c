package ripgrep

// Options carries the traversal policy the searcher must honor so that its
// view of the tree matches the walker's.
type Options struct {
	Hidden        bool     // search hidden files and directories
	OneFileSystem bool     // stay on the root's device
	Follow        bool     // follow symlinks
	Excludes      []string // ignore globs, passed as negated -g patterns
}

// ListArgs builds the argument list that prints the relative path of every
// file whose contents match query.
func ListArgs(query string, opts Options) []string {
	args := []string{"-l", "--color=never", "--no-messages", "-e", query}
	return append(args, opts.tail()...)
}

// DetailArgs builds the argument list that prints one path:line:column:text
// record per matching line.
func DetailArgs(query string, opts Options) []string {
	args := []string{"-n", "--column", "--no-heading", "--color=never", "--no-messages", "-e", query}
	return append(args, opts.tail()...)
}

// FirstMatchArgs builds the argument list that prints the line number of the
// first match of query in file.
func FirstMatchArgs(query, file string) []string {
	return []string{"-n", "-m", "1", "--color=never", "--no-messages", "-e", query, file}
}

func (o Options) tail() []string {
	var args []string
	if o.Hidden {
		args = append(args, "--hidden")
	}
	if o.OneFileSystem {
		args = append(args, "--one-file-system")
	}
	if o.Follow {
		args = append(args, "--follow")
	}
	for _, glob := range o.Excludes {
		args = append(args, "-g", "!"+glob)
	}
	// the search root is always the working directory
	return append(args, ".")
}
