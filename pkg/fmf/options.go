package fmf

import (
	"log/slog"
	"os"

	"github.com/thoreinstein/fmf/pkg/fileutil"
	"github.com/thoreinstein/fmf/pkg/frontmatter"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

// Option configures a read or write operation.
type Option func(*options)

type options struct {
	keySort   metadata.KeySort
	omitEmpty bool
	perm      os.FileMode
	parents   bool
	style     frontmatter.Style
	styleSet  bool
	logger    *slog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		perm:    fileutil.DefaultPerm,
		parents: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

func (o *options) encodeOptions() []metadata.EncodeOption {
	var eo []metadata.EncodeOption
	if o.keySort != nil {
		eo = append(eo, metadata.WithKeySort(o.keySort))
	}
	if o.omitEmpty {
		eo = append(eo, metadata.WithOmitEmpty())
	}
	return eo
}

// styleFor returns the WithStyle style, or the extension default for path.
func (o *options) styleFor(path string) frontmatter.Style {
	if o.styleSet {
		return o.style
	}
	return frontmatter.StyleForFile(path)
}

// WithKeySort orders top-level keys on encode.
func WithKeySort(sort metadata.KeySort) Option {
	return func(o *options) {
		o.keySort = sort
	}
}

// WithOmitEmpty drops top-level nil values and empty maps on encode.
func WithOmitEmpty() Option {
	return func(o *options) {
		o.omitEmpty = true
	}
}

// WithPerm sets the permission for newly created files. Existing files keep
// their mode. The default is 0644.
func WithPerm(perm os.FileMode) Option {
	return func(o *options) {
		o.perm = perm
	}
}

// WithoutParents makes Write fail rather than create missing parent
// directories.
func WithoutParents() Option {
	return func(o *options) {
		o.parents = false
	}
}

// WithStyle sets the style Update uses when the file has no frontmatter yet.
func WithStyle(style frontmatter.Style) Option {
	return func(o *options) {
		o.style = style
		o.styleSet = true
	}
}

// WithLogger sets the logger for debug events. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
