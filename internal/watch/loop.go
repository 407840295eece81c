package watch

import (
	"context"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
)

// Deduper remembers the fingerprint of the last emitted output block
type Deduper struct {
	last uint64
	seen bool
}

// Changed reports whether block differs from the previous block and records it
func (d *Deduper) Changed(block []byte) bool {
	sum := xxhash.Sum64(block)
	if d.seen && sum == d.last {
		return false
	}
	d.last, d.seen = sum, true
	return true
}

// RenderFunc produces one complete output block
type RenderFunc func(ctx context.Context) ([]byte, error)

// Loop writes the output of render once, then again after every batch of
// changes whose re-run produced different output. Re-emitted blocks are
// preceded by an empty line. Errors from the first render are returned;
// later ones are logged and the previous output stays current.
func Loop(ctx context.Context, changes <-chan []string, render RenderFunc, out io.Writer, log *logrus.Entry) error {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	var dedup Deduper
	block, err := render(ctx)
	if err != nil {
		return err
	}
	dedup.Changed(block)
	if _, err := out.Write(block); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-changes:
			if !ok {
				return nil
			}
			log.WithField("paths", len(batch)).Debug("change batch received")

			block, err := render(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.WithError(err).Warn("re-run failed")
				continue
			}
			if !dedup.Changed(block) {
				continue
			}
			if _, err := out.Write(append([]byte("\n"), block...)); err != nil {
				return err
			}
		}
	}
}
